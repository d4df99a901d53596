package grading

import (
	"context"

	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
)

var (
	// errors
	ErrNotFound     = core.NewNotFoundError("grading scheme")
	ErrSchemeExists = errors.New("a grading scheme for this level, department, and semester already exists")
)

type (
	Repository interface {
		// CreateScheme returns ErrSchemeExists if a scheme with the same department, level and semester exists.
		CreateScheme(ctx context.Context, sch Scheme) (Scheme, error)
		QuerySchemes(ctx context.Context, filter *QueryFilter) ([]Scheme, error)
		GetScheme(ctx context.Context, id string) (Scheme, error)
		// UpdateScheme returns ErrSchemeExists if it would collide with another scheme.
		UpdateScheme(ctx context.Context, sch Scheme) (Scheme, error)
	}

	Academics interface {
		GetDepartment(ctx context.Context, id string) (academic.Department, error)
		GetPeriod(ctx context.Context, id string) (academic.Term, error)
	}

	Service struct {
		repo      Repository
		academics Academics
	}
)

func NewService(repo Repository, academics Academics) *Service {
	return &Service{repo: repo, academics: academics}
}

func (svc *Service) check(ctx context.Context, si SchemeInput) error {
	dept, err := svc.academics.GetDepartment(ctx, si.DepartmentID)
	if err != nil {
		if core.IsNotFound(err) {
			return core.NewFieldError("department_id", err.Error())
		}
		return errors.Wrap(err, "finding department")
	}
	if !dept.HasLevel(si.Level) {
		return core.NewFieldError("level", "level exceeds the department's max levels")
	}
	if _, err = svc.academics.GetPeriod(ctx, si.SemesterID); err != nil {
		if core.IsNotFound(err) {
			return core.NewFieldError("semester_id", err.Error())
		}
		return errors.Wrap(err, "finding semester")
	}
	return nil
}

func uniquenessErr(err error) error {
	if errors.Cause(err) == ErrSchemeExists {
		return core.NewValidationError(ErrSchemeExists)
	}
	return err
}

func (svc *Service) Create(ctx context.Context, si SchemeInput) (Scheme, error) {
	if err := svc.check(ctx, si); err != nil {
		return Scheme{}, err
	}
	now := core.Now()
	sch, err := svc.repo.CreateScheme(ctx, Scheme{
		AssessmentTypes: si.AssessmentTypes,
		TotalScore:      si.Total(),
		Level:           si.Level,
		MaxCourseUnits:  si.MaxCourseUnits,
		DepartmentID:    si.DepartmentID,
		SemesterID:      si.SemesterID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	return sch, uniquenessErr(err)
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Scheme, error) {
	return svc.repo.QuerySchemes(ctx, filter)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Scheme, error) {
	if !core.IsID(id) {
		return Scheme{}, ErrNotFound
	}
	return svc.repo.GetScheme(ctx, id)
}

func (svc *Service) Update(ctx context.Context, sch Scheme, si SchemeInput) (Scheme, error) {
	if err := svc.check(ctx, si); err != nil {
		return Scheme{}, err
	}
	sch.AssessmentTypes = si.AssessmentTypes
	sch.TotalScore = si.Total()
	sch.Level = si.Level
	sch.MaxCourseUnits = si.MaxCourseUnits
	sch.DepartmentID = si.DepartmentID
	sch.SemesterID = si.SemesterID
	sch.UpdatedAt = core.Now()
	sch, err := svc.repo.UpdateScheme(ctx, sch)
	return sch, uniquenessErr(err)
}
