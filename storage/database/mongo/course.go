package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/course"
)

type courseRepository struct {
	courses   collection[course.Course]
	electives collection[course.Elective]
}

var (
	// interface compliance checks
	_ course.Repository         = (*courseRepository)(nil)
	_ course.ElectiveRepository = (*courseRepository)(nil)
)

func NewCourseRepository(db *DB) *courseRepository {
	return &courseRepository{
		courses:   newCollection[course.Course](db, coursesCollection, course.ErrNotFound),
		electives: newCollection[course.Elective](db, electivesCollection, course.ErrElectiveNotFound),
	}
}

// levelFilter builds the query shared by courses and electives.
func levelFilter(deptID string, level int, semID string) bson.M {
	query := bson.M{}
	if deptID != "" {
		query["department_id"] = deptID
	}
	if level != 0 {
		query["level"] = level
	}
	if semID != "" {
		query["semester_id"] = semID
	}
	return query
}

func (repo *courseRepository) CreateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	crs.ID = core.NewID()
	if err := repo.courses.insert(ctx, crs); err != nil {
		return course.Course{}, err
	}
	return crs, nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context, filter *course.QueryFilter) ([]course.Course, error) {
	query := bson.M{}
	if filter != nil {
		query = levelFilter(filter.DepartmentID, filter.Level, filter.SemesterID)
		if filter.LecturerID != "" {
			query["lecturer_id"] = filter.LecturerID
		}
	}
	return repo.courses.find(ctx, query)
}

func (repo *courseRepository) GetCourse(ctx context.Context, id string) (course.Course, error) {
	return repo.courses.findOne(ctx, byID(id))
}

func (repo *courseRepository) GetCourses(ctx context.Context, ids []string) ([]course.Course, error) {
	return repo.courses.findIDs(ctx, ids)
}

func (repo *courseRepository) UpdateCourse(ctx context.Context, crs course.Course) (course.Course, error) {
	if err := repo.courses.replace(ctx, crs.ID, crs); err != nil {
		return course.Course{}, err
	}
	return crs, nil
}

func (repo *courseRepository) DeleteCourse(ctx context.Context, id string) error {
	return repo.courses.delete(ctx, id)
}

// Electives

func (repo *courseRepository) CreateElective(ctx context.Context, elec course.Elective) (course.Elective, error) {
	elec.ID = core.NewID()
	if err := repo.electives.insert(ctx, elec); err != nil {
		return course.Elective{}, err
	}
	return elec, nil
}

func (repo *courseRepository) QueryElectives(ctx context.Context, filter *course.ElectiveFilter) ([]course.Elective, error) {
	query := bson.M{}
	if filter != nil {
		query = levelFilter(filter.DepartmentID, filter.Level, filter.SemesterID)
	}
	return repo.electives.find(ctx, query)
}

func (repo *courseRepository) GetElective(ctx context.Context, id string) (course.Elective, error) {
	return repo.electives.findOne(ctx, byID(id))
}

func (repo *courseRepository) UpdateElective(ctx context.Context, elec course.Elective) (course.Elective, error) {
	if err := repo.electives.replace(ctx, elec.ID, elec); err != nil {
		return course.Elective{}, err
	}
	return elec, nil
}

func (repo *courseRepository) DeleteElective(ctx context.Context, id string) error {
	return repo.electives.delete(ctx, id)
}
