package course

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
)

var (
	// errors
	ErrNotFound         = core.NewNotFoundError("course")
	ErrElectiveNotFound = core.NewNotFoundError("elective")
	ErrSomeNotFound     = errors.New("one or more courses not found")
)

type (
	Repository interface {
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		QueryCourses(ctx context.Context, filter *QueryFilter) ([]Course, error)
		GetCourse(ctx context.Context, id string) (Course, error)
		// GetCourses returns the courses found among ids, in no particular order.
		GetCourses(ctx context.Context, ids []string) ([]Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		DeleteCourse(ctx context.Context, id string) error
	}

	ElectiveRepository interface {
		CreateElective(ctx context.Context, elec Elective) (Elective, error)
		QueryElectives(ctx context.Context, filter *ElectiveFilter) ([]Elective, error)
		GetElective(ctx context.Context, id string) (Elective, error)
		UpdateElective(ctx context.Context, elec Elective) (Elective, error)
		DeleteElective(ctx context.Context, id string) error
	}

	// Academics resolves the references of a course.
	Academics interface {
		GetDepartment(ctx context.Context, id string) (academic.Department, error)
		GetLecturer(ctx context.Context, id string) (academic.Lecturer, error)
		GetPeriod(ctx context.Context, id string) (academic.Term, error)
	}

	Service struct {
		repo      Repository
		electives ElectiveRepository
		academics Academics
	}
)

func NewService(repo Repository, electives ElectiveRepository, academics Academics) *Service {
	return &Service{repo: repo, electives: electives, academics: academics}
}

// normalizeCode turns " csc  101" into "CSC 101".
func normalizeCode(code string) string {
	return strings.ToUpper(strings.Join(strings.Fields(code), " "))
}

// fieldErr turns a reference not found into an error on field, wraps anything else.
func fieldErr(err error, field string) error {
	if core.IsNotFound(err) {
		return core.NewFieldError(field, errors.Cause(err).Error())
	}
	return errors.Wrapf(err, "checking %s", field)
}

// checkRefs makes sure the department, semester and level of a course or elective are consistent.
func (svc *Service) checkRefs(ctx context.Context, deptID, semID string, level int) error {
	dept, err := svc.academics.GetDepartment(ctx, deptID)
	if err != nil {
		return fieldErr(err, "department_id")
	}
	if !dept.HasLevel(level) {
		return core.NewFieldError("level", "level exceeds the department's max levels")
	}
	if _, err = svc.academics.GetPeriod(ctx, semID); err != nil {
		return fieldErr(err, "semester_id")
	}
	return nil
}

func (svc *Service) checkCourse(ctx context.Context, ci CourseInput) error {
	if err := svc.checkRefs(ctx, ci.DepartmentID, ci.SemesterID, ci.Level); err != nil {
		return err
	}
	if _, err := svc.academics.GetLecturer(ctx, ci.LecturerID); err != nil {
		return fieldErr(err, "lecturer_id")
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ci CourseInput) (Course, error) {
	if err := svc.checkCourse(ctx, ci); err != nil {
		return Course{}, err
	}
	now := core.Now()
	return svc.repo.CreateCourse(ctx, Course{
		Name:         ci.Name,
		Code:         ci.Code,
		Units:        ci.Units,
		LecturerID:   ci.LecturerID,
		DepartmentID: ci.DepartmentID,
		Level:        ci.Level,
		SemesterID:   ci.SemesterID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Course, error) {
	return svc.repo.QueryCourses(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Course, error) {
	if !core.IsID(id) {
		return Course{}, ErrNotFound
	}
	return svc.repo.GetCourse(ctx, id)
}

// GetByIDs resolves every distinct id, failing with ErrSomeNotFound if any is missing.
func (svc *Service) GetByIDs(ctx context.Context, ids []string) (map[string]Course, error) {
	ids = core.UniqueStrings(ids)
	for _, id := range ids {
		if !core.IsID(id) {
			return nil, ErrSomeNotFound
		}
	}
	byID, err := svc.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(byID) != len(ids) {
		return nil, ErrSomeNotFound
	}
	return byID, nil
}

// FindByIDs returns the courses found among ids, keyed by ID.
func (svc *Service) FindByIDs(ctx context.Context, ids []string) (map[string]Course, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range core.UniqueStrings(ids) {
		if core.IsID(id) {
			valid = append(valid, id)
		}
	}
	crses, err := svc.repo.GetCourses(ctx, valid)
	if err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	byID := make(map[string]Course, len(crses))
	for _, c := range crses {
		byID[c.ID] = c
	}
	return byID, nil
}

func (svc *Service) Update(ctx context.Context, crs Course, ci CourseInput) (Course, error) {
	if err := svc.checkCourse(ctx, ci); err != nil {
		return Course{}, err
	}
	crs.Name = ci.Name
	crs.Code = ci.Code
	crs.Units = ci.Units
	crs.LecturerID = ci.LecturerID
	crs.DepartmentID = ci.DepartmentID
	crs.Level = ci.Level
	crs.SemesterID = ci.SemesterID
	crs.UpdatedAt = core.Now()
	return svc.repo.UpdateCourse(ctx, crs)
}

func (svc *Service) Delete(ctx context.Context, crs Course) error {
	return svc.repo.DeleteCourse(ctx, crs.ID)
}

// Electives

func (svc *Service) checkElective(ctx context.Context, ei ElectiveInput) error {
	if _, err := svc.GetByID(ctx, ei.CourseID); err != nil {
		return fieldErr(err, "course_id")
	}
	return svc.checkRefs(ctx, ei.DepartmentID, ei.SemesterID, ei.Level)
}

func (svc *Service) CreateElective(ctx context.Context, ei ElectiveInput) (Elective, error) {
	if err := svc.checkElective(ctx, ei); err != nil {
		return Elective{}, err
	}
	now := core.Now()
	return svc.electives.CreateElective(ctx, Elective{
		CourseID:     ei.CourseID,
		DepartmentID: ei.DepartmentID,
		Level:        ei.Level,
		SemesterID:   ei.SemesterID,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func (svc *Service) QueryElectives(ctx context.Context, filter *ElectiveFilter) ([]Elective, error) {
	return svc.electives.QueryElectives(ctx, filter)
}

func (svc *Service) GetElective(ctx context.Context, id string) (Elective, error) {
	if !core.IsID(id) {
		return Elective{}, ErrElectiveNotFound
	}
	return svc.electives.GetElective(ctx, id)
}

func (svc *Service) UpdateElective(ctx context.Context, elec Elective, ei ElectiveInput) (Elective, error) {
	if err := svc.checkElective(ctx, ei); err != nil {
		return Elective{}, err
	}
	elec.CourseID = ei.CourseID
	elec.DepartmentID = ei.DepartmentID
	elec.Level = ei.Level
	elec.SemesterID = ei.SemesterID
	elec.UpdatedAt = core.Now()
	return svc.electives.UpdateElective(ctx, elec)
}

func (svc *Service) DeleteElective(ctx context.Context, elec Elective) error {
	return svc.electives.DeleteElective(ctx, elec.ID)
}
