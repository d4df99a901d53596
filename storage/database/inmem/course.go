package inmemdb

import (
	"context"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/course"
)

type courseRepository struct {
	courses   *table[course.Course]
	electives *table[course.Elective]
}

var (
	// interface compliance checks
	_ course.Repository         = (*courseRepository)(nil)
	_ course.ElectiveRepository = (*courseRepository)(nil)
)

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{courses: db.courses, electives: db.electives}
}

func (repo *courseRepository) CreateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	crs.ID = core.NewID()
	repo.courses.insert(crs.ID, crs)
	return crs, nil
}

func (repo *courseRepository) QueryCourses(_ context.Context, filter *course.QueryFilter) ([]course.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	var keep func(course.Course) bool
	if filter != nil {
		keep = func(c course.Course) bool {
			return (filter.DepartmentID == "" || c.DepartmentID == filter.DepartmentID) &&
				(filter.Level == 0 || c.Level == filter.Level) &&
				(filter.SemesterID == "" || c.SemesterID == filter.SemesterID) &&
				(filter.LecturerID == "" || c.LecturerID == filter.LecturerID)
		}
	}
	return repo.courses.filter(keep), nil
}

func (repo *courseRepository) GetCourse(_ context.Context, id string) (course.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	if crs, ok := repo.courses.get(id); ok {
		return crs, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) GetCourses(_ context.Context, ids []string) ([]course.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()
	return repo.courses.getMany(ids), nil
}

func (repo *courseRepository) UpdateCourse(_ context.Context, crs course.Course) (course.Course, error) {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	if !repo.courses.set(crs.ID, crs) {
		return course.Course{}, course.ErrNotFound
	}
	return crs, nil
}

func (repo *courseRepository) DeleteCourse(_ context.Context, id string) error {
	repo.courses.Lock()
	defer repo.courses.Unlock()

	if !repo.courses.delete(id) {
		return course.ErrNotFound
	}
	return nil
}

// Electives

func (repo *courseRepository) CreateElective(_ context.Context, elec course.Elective) (course.Elective, error) {
	repo.electives.Lock()
	defer repo.electives.Unlock()

	elec.ID = core.NewID()
	repo.electives.insert(elec.ID, elec)
	return elec, nil
}

func (repo *courseRepository) QueryElectives(_ context.Context, filter *course.ElectiveFilter) ([]course.Elective, error) {
	repo.electives.RLock()
	defer repo.electives.RUnlock()

	var keep func(course.Elective) bool
	if filter != nil {
		keep = func(e course.Elective) bool {
			return (filter.DepartmentID == "" || e.DepartmentID == filter.DepartmentID) &&
				(filter.Level == 0 || e.Level == filter.Level) &&
				(filter.SemesterID == "" || e.SemesterID == filter.SemesterID)
		}
	}
	return repo.electives.filter(keep), nil
}

func (repo *courseRepository) GetElective(_ context.Context, id string) (course.Elective, error) {
	repo.electives.RLock()
	defer repo.electives.RUnlock()

	if elec, ok := repo.electives.get(id); ok {
		return elec, nil
	}
	return course.Elective{}, course.ErrElectiveNotFound
}

func (repo *courseRepository) UpdateElective(_ context.Context, elec course.Elective) (course.Elective, error) {
	repo.electives.Lock()
	defer repo.electives.Unlock()

	if !repo.electives.set(elec.ID, elec) {
		return course.Elective{}, course.ErrElectiveNotFound
	}
	return elec, nil
}

func (repo *courseRepository) DeleteElective(_ context.Context, id string) error {
	repo.electives.Lock()
	defer repo.electives.Unlock()

	if !repo.electives.delete(id) {
		return course.ErrElectiveNotFound
	}
	return nil
}
