package timetable

import (
	"context"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
	"github.com/PrimotionStudio/z1academic/core/course"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("timetable")
)

type (
	Repository interface {
		// UpsertTimetable replaces the entries of the timetable with the same Key, or inserts tt.
		UpsertTimetable(ctx context.Context, tt Timetable) (Timetable, error)
		GetTimetable(ctx context.Context, key Key) (Timetable, error)
		GetTimetableByID(ctx context.Context, id string) (Timetable, error)
		QueryTimetables(ctx context.Context) ([]Timetable, error)
	}

	Courses interface {
		// GetByIDs fails with course.ErrSomeNotFound unless every id resolves.
		GetByIDs(ctx context.Context, ids []string) (map[string]course.Course, error)
		// FindByIDs returns the courses found among ids.
		FindByIDs(ctx context.Context, ids []string) (map[string]course.Course, error)
	}

	Academics interface {
		GetDepartment(ctx context.Context, id string) (academic.Department, error)
		GetPeriod(ctx context.Context, id string) (academic.Term, error)
	}

	Service struct {
		repo      Repository
		courses   Courses
		academics Academics
		saved     *cache.Cache
	}
)

// NewService returns a timetable Service caching stored timetables by key in saved.
// Courses are resolved on every read.
func NewService(repo Repository, courses Courses, academics Academics, saved *cache.Cache) *Service {
	return &Service{repo: repo, courses: courses, academics: academics, saved: saved}
}

func (svc *Service) checkKey(ctx context.Context, key Key) error {
	dept, err := svc.academics.GetDepartment(ctx, key.DepartmentID)
	if err != nil {
		if core.IsNotFound(err) {
			return core.NewFieldError("department_id", err.Error())
		}
		return errors.Wrap(err, "finding department")
	}
	if !dept.HasLevel(key.Level) {
		return core.NewFieldError("level", "level exceeds the department's max levels")
	}
	if _, err = svc.academics.GetPeriod(ctx, key.SemesterID); err != nil {
		if core.IsNotFound(err) {
			return core.NewFieldError("semester_id", err.Error())
		}
		return errors.Wrap(err, "finding semester")
	}
	return nil
}

// Set validates the entries of nt against lecturer double bookings, then replaces the
// timetable of nt.Key with them.
func (svc *Service) Set(ctx context.Context, nt NewTimetable) (Timetable, error) {
	if err := svc.checkKey(ctx, nt.Key); err != nil {
		return Timetable{}, err
	}

	courses, err := svc.courses.GetByIDs(ctx, nt.CourseIDs())
	if err != nil {
		if errors.Cause(err) == course.ErrSomeNotFound {
			return Timetable{}, core.NewValidationError(course.ErrSomeNotFound)
		}
		return Timetable{}, errors.Wrap(err, "resolving courses")
	}

	if err = CheckConflicts(nt.Entries, courses); err != nil {
		return Timetable{}, err
	}

	now := core.Now()
	tt, err := svc.repo.UpsertTimetable(ctx, Timetable{
		DepartmentID: nt.DepartmentID,
		Level:        nt.Level,
		SemesterID:   nt.SemesterID,
		Entries:      nt.Entries,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return Timetable{}, errors.Wrap(err, "saving timetable")
	}
	svc.saved.Delete(nt.Key.String())
	return tt, nil
}

// Get returns the timetable of key with its courses populated.
func (svc *Service) Get(ctx context.Context, key Key) (View, error) {
	tt, err := svc.stored(ctx, key)
	if err != nil {
		return View{}, err
	}
	return svc.Populate(ctx, tt)
}

func (svc *Service) stored(ctx context.Context, key Key) (Timetable, error) {
	if cached, found := svc.saved.Get(key.String()); found {
		return cached.(Timetable), nil
	}
	tt, err := svc.repo.GetTimetable(ctx, key)
	if err != nil {
		return Timetable{}, err
	}
	svc.saved.Set(key.String(), tt, cache.DefaultExpiration)
	return tt, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (Timetable, error) {
	if !core.IsID(id) {
		return Timetable{}, ErrNotFound
	}
	return svc.repo.GetTimetableByID(ctx, id)
}

func (svc *Service) List(ctx context.Context) ([]Timetable, error) {
	return svc.repo.QueryTimetables(ctx)
}

// Populate resolves the entry courses of tt. Entries of deleted courses keep a nil Course.
func (svc *Service) Populate(ctx context.Context, tt Timetable) (View, error) {
	ids := make([]string, 0, len(tt.Entries))
	for _, e := range tt.Entries {
		ids = append(ids, e.CourseID)
	}
	courses, err := svc.courses.FindByIDs(ctx, ids)
	if err != nil {
		return View{}, errors.Wrap(err, "populating timetable courses")
	}

	entries := make([]PopulatedEntry, 0, len(tt.Entries))
	for _, e := range tt.Entries {
		pe := PopulatedEntry{Entry: e}
		if crs, ok := courses[e.CourseID]; ok {
			pe.Course = &crs
		}
		entries = append(entries, pe)
	}
	return View{
		ID:           tt.ID,
		DepartmentID: tt.DepartmentID,
		Level:        tt.Level,
		SemesterID:   tt.SemesterID,
		Entries:      entries,
		CreatedAt:    tt.CreatedAt,
		UpdatedAt:    tt.UpdatedAt,
	}, nil
}
