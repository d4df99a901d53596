package timetable

import (
	"context"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
	"github.com/PrimotionStudio/z1academic/core/course"
)

type fakeRepo struct {
	byKey map[Key]Timetable
	reads int
}

func (r *fakeRepo) UpsertTimetable(_ context.Context, tt Timetable) (Timetable, error) {
	if prev, ok := r.byKey[tt.Key()]; ok {
		prev.Entries = tt.Entries
		prev.UpdatedAt = tt.UpdatedAt
		tt = prev
	} else {
		tt.ID = core.NewID()
	}
	r.byKey[tt.Key()] = tt
	return tt, nil
}

func (r *fakeRepo) GetTimetable(_ context.Context, key Key) (Timetable, error) {
	r.reads++
	if tt, ok := r.byKey[key]; ok {
		return tt, nil
	}
	return Timetable{}, ErrNotFound
}

func (r *fakeRepo) GetTimetableByID(_ context.Context, id string) (Timetable, error) {
	for _, tt := range r.byKey {
		if tt.ID == id {
			return tt, nil
		}
	}
	return Timetable{}, ErrNotFound
}

func (r *fakeRepo) QueryTimetables(context.Context) ([]Timetable, error) {
	tts := make([]Timetable, 0, len(r.byKey))
	for _, tt := range r.byKey {
		tts = append(tts, tt)
	}
	return tts, nil
}

type fakeCourses map[string]course.Course

func (fc fakeCourses) FindByIDs(_ context.Context, ids []string) (map[string]course.Course, error) {
	found := make(map[string]course.Course)
	for _, id := range ids {
		if crs, ok := fc[id]; ok {
			found[id] = crs
		}
	}
	return found, nil
}

func (fc fakeCourses) GetByIDs(ctx context.Context, ids []string) (map[string]course.Course, error) {
	found, _ := fc.FindByIDs(ctx, ids)
	if len(found) != len(core.UniqueStrings(ids)) {
		return nil, course.ErrSomeNotFound
	}
	return found, nil
}

type fakeAcademics struct {
	dept   academic.Department
	period academic.Term
}

func (fa fakeAcademics) GetDepartment(_ context.Context, id string) (academic.Department, error) {
	if id != fa.dept.ID {
		return academic.Department{}, academic.ErrDepartmentNotFound
	}
	return fa.dept, nil
}

func (fa fakeAcademics) GetPeriod(_ context.Context, id string) (academic.Term, error) {
	if id != fa.period.ID {
		return academic.Term{}, academic.ErrPeriodNotFound
	}
	return fa.period, nil
}

func newTestService(t *testing.T) (*Service, *fakeRepo, fakeCourses, Key) {
	t.Helper()
	dept := academic.Department{ID: core.NewID(), MaxLevels: 300}
	period := academic.Term{ID: core.NewID(), Name: "First Semester"}
	lecturer := core.NewID()
	courses := fakeCourses{}
	for _, code := range []string{"CSC101", "CSC103"} {
		id := core.NewID()
		courses[id] = course.Course{ID: id, Code: code, LecturerID: lecturer, DepartmentID: dept.ID, Level: 100}
	}

	repo := &fakeRepo{byKey: make(map[Key]Timetable)}
	svc := NewService(repo, courses, fakeAcademics{dept: dept, period: period}, cache.New(time.Minute, time.Minute))
	return svc, repo, courses, Key{DepartmentID: dept.ID, Level: 100, SemesterID: period.ID}
}

func (fc fakeCourses) ids() []string {
	ids := make([]string, 0, len(fc))
	for id := range fc {
		ids = append(ids, id)
	}
	return ids
}

func TestService_Set(t *testing.T) {
	svc, _, courses, key := newTestService(t)
	ids := courses.ids()

	otherDept := key
	otherDept.DepartmentID = core.NewID()
	tooHigh := key
	tooHigh.Level = 400
	otherPeriod := key
	otherPeriod.SemesterID = core.NewID()

	tests := []struct {
		name      string
		nt        NewTimetable
		wantField string
		wantErr   string
	}{
		{
			name:      "unknown department",
			nt:        NewTimetable{Key: otherDept, Entries: []Entry{{CourseID: ids[0], Day: Monday, TimeSlot: "9:00 AM"}}},
			wantField: "department_id",
			wantErr:   "department not found",
		},
		{
			name:      "level above the department's",
			nt:        NewTimetable{Key: tooHigh, Entries: []Entry{{CourseID: ids[0], Day: Monday, TimeSlot: "9:00 AM"}}},
			wantField: "level",
			wantErr:   "level exceeds the department's max levels",
		},
		{
			name:      "unknown semester",
			nt:        NewTimetable{Key: otherPeriod, Entries: []Entry{{CourseID: ids[0], Day: Monday, TimeSlot: "9:00 AM"}}},
			wantField: "semester_id",
			wantErr:   "period not found",
		},
		{
			name:    "unknown course",
			nt:      NewTimetable{Key: key, Entries: []Entry{{CourseID: core.NewID(), Day: Monday, TimeSlot: "9:00 AM"}}},
			wantErr: course.ErrSomeNotFound.Error(),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Set(context.Background(), tt.nt)
			require.Error(t, err)
			vErr, ok := errors.Cause(err).(*core.ValidationError)
			require.True(t, ok, "got %T", errors.Cause(err))
			assert.Equal(t, tt.wantErr, vErr.Error())
			if tt.wantField != "" {
				require.Len(t, vErr.Fields, 1)
				assert.Equal(t, tt.wantField, vErr.Fields[0].Field)
			}
		})
	}

	t.Run("lecturer double booked", func(t *testing.T) {
		_, err := svc.Set(context.Background(), NewTimetable{Key: key, Entries: []Entry{
			{CourseID: ids[0], Day: Tuesday, TimeSlot: "10:00 AM"},
			{CourseID: ids[1], Day: Tuesday, TimeSlot: "10:00 AM"},
		}})
		var conflict *ConflictError
		require.True(t, errors.As(err, &conflict))
		assert.Equal(t, Tuesday, conflict.Day)
	})
}

func TestService_Get_cachesTimetables(t *testing.T) {
	svc, repo, courses, key := newTestService(t)
	ctx := context.Background()
	ids := courses.ids()

	_, err := svc.Get(ctx, key)
	assert.Equal(t, ErrNotFound, errors.Cause(err))
	assert.Equal(t, 1, repo.reads)

	_, err = svc.Set(ctx, NewTimetable{Key: key, Entries: []Entry{{CourseID: ids[0], Day: Monday, TimeSlot: "9:00 AM"}}})
	require.NoError(t, err)

	view, err := svc.Get(ctx, key)
	require.NoError(t, err)
	require.Len(t, view.Entries, 1)
	require.NotNil(t, view.Entries[0].Course)
	assert.Equal(t, ids[0], view.Entries[0].Course.ID)

	_, err = svc.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.reads, "the second read is served from the cache")

	_, err = svc.Set(ctx, NewTimetable{Key: key, Entries: []Entry{
		{CourseID: ids[0], Day: Monday, TimeSlot: "9:00 AM"},
		{CourseID: ids[1], Day: Friday, TimeSlot: "9:00 AM"},
	}})
	require.NoError(t, err)

	view, err = svc.Get(ctx, key)
	require.NoError(t, err)
	assert.Len(t, view.Entries, 2, "setting a timetable invalidates its cached copy")
	assert.Equal(t, 3, repo.reads)
}

func TestService_Get_resolvesCoursesOnEveryRead(t *testing.T) {
	svc, repo, courses, key := newTestService(t)
	ctx := context.Background()
	ids := courses.ids()

	_, err := svc.Set(ctx, NewTimetable{Key: key, Entries: []Entry{
		{CourseID: ids[0], Day: Monday, TimeSlot: "9:00 AM"},
		{CourseID: ids[1], Day: Monday, TimeSlot: "10:00 AM"},
	}})
	require.NoError(t, err)
	_, err = svc.Get(ctx, key)
	require.NoError(t, err)

	renamed := courses[ids[0]]
	renamed.Name = "Renamed"
	courses[ids[0]] = renamed
	delete(courses, ids[1])

	view, err := svc.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.reads, "the timetable itself comes from the cache")
	require.Len(t, view.Entries, 2)
	if assert.NotNil(t, view.Entries[0].Course) {
		assert.Equal(t, "Renamed", view.Entries[0].Course.Name)
	}
	assert.Nil(t, view.Entries[1].Course)
}

func TestService_Populate_deletedCourse(t *testing.T) {
	svc, _, courses, key := newTestService(t)
	ids := courses.ids()
	gone := core.NewID()

	view, err := svc.Populate(context.Background(), Timetable{
		ID:           core.NewID(),
		DepartmentID: key.DepartmentID,
		Level:        key.Level,
		SemesterID:   key.SemesterID,
		Entries: []Entry{
			{CourseID: ids[0], Day: Monday, TimeSlot: "9:00 AM"},
			{CourseID: gone, Day: Monday, TimeSlot: "10:00 AM"},
		},
	})
	require.NoError(t, err)
	require.Len(t, view.Entries, 2)
	assert.NotNil(t, view.Entries[0].Course)
	assert.Nil(t, view.Entries[1].Course)
	assert.Equal(t, gone, view.Entries[1].CourseID)
}

func TestService_GetByID(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), "not-an-id")
	assert.Equal(t, ErrNotFound, err)

	_, err = svc.GetByID(context.Background(), core.NewID())
	assert.Equal(t, ErrNotFound, errors.Cause(err))
}
