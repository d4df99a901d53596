package tests

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
	"github.com/PrimotionStudio/z1academic/core/course"
	"github.com/PrimotionStudio/z1academic/core/timetable"
	"github.com/PrimotionStudio/z1academic/core/user"
	"github.com/PrimotionStudio/z1academic/tests"
)

// school is a department with two lecturers: lect1 teaches crs1 and crs2, lect2 teaches crs3.
type school struct {
	dept             academic.Department
	semester         academic.Term
	lect1, lect2     academic.Lecturer
	crs1, crs2, crs3 course.Course
}

func seedSchool(t *testing.T, app testApp) school {
	r := app.repos
	fac := testutil.CreateFaculty(t, r.Faculties, "Science")
	dept := testutil.CreateDepartment(t, r.Departments, fac.ID, "Computer Science", 400)
	sem := testutil.CreateTerm(t, r.Terms, academic.KindPeriod, "First Semester")

	usr1 := testutil.CreateUser(t, r.Users, "Ada Obi", "ada@test.ng", "+2348000000001", user.RoleLecturer)
	usr2 := testutil.CreateUser(t, r.Users, "Bayo Ade", "bayo@test.ng", "+2348000000002", user.RoleLecturer)
	lect1 := testutil.CreateLecturer(t, r.Lecturers, usr1.ID, dept.ID)
	lect2 := testutil.CreateLecturer(t, r.Lecturers, usr2.ID, dept.ID)

	return school{
		dept:     dept,
		semester: sem,
		lect1:    lect1,
		lect2:    lect2,
		crs1:     testutil.CreateCourse(t, r.Courses, "CSC101", lect1.ID, dept.ID, 100, sem.ID),
		crs2:     testutil.CreateCourse(t, r.Courses, "CSC103", lect1.ID, dept.ID, 100, sem.ID),
		crs3:     testutil.CreateCourse(t, r.Courses, "MTH101", lect2.ID, dept.ID, 100, sem.ID),
	}
}

func (s school) key(level int) timetable.Key {
	return timetable.Key{DepartmentID: s.dept.ID, Level: level, SemesterID: s.semester.ID}
}

func keyQuery(key timetable.Key) string {
	v := make(url.Values)
	v.Set("department_id", key.DepartmentID)
	v.Set("level", strconv.Itoa(key.Level))
	v.Set("semester_id", key.SemesterID)
	return "/v1/timetables?" + v.Encode()
}

func entry(crs course.Course, day, slot string) timetable.Entry {
	return timetable.Entry{CourseID: crs.ID, Day: day, TimeSlot: slot}
}

func setTimetable(t *testing.T, app testApp, key timetable.Key, entries ...timetable.Entry) timetable.Timetable {
	rec := app.serve(http.MethodPost, "/v1/timetables", marshallObj(t, timetable.NewTimetable{Key: key, Entries: entries}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tt timetable.Timetable
	decode(t, rec, "timetable", &tt)
	return tt
}

func Test_timetableApi_set(t *testing.T) {
	app := setup(t)
	s := seedSchool(t, app)
	key := s.key(100)

	body := func(key timetable.Key, entries ...timetable.Entry) []byte {
		return marshallObj(t, timetable.NewTimetable{Key: key, Entries: entries})
	}
	conflict := &timetable.ConflictError{
		LecturerID:          s.lect1.ID,
		CourseID:            s.crs2.ID,
		ConflictingCourseID: s.crs1.ID,
		Day:                 timetable.Monday,
		TimeSlot:            "9:00 AM",
	}
	daysMsg := "day must be one of " + strings.Join(timetable.Days, ", ")
	slotsMsg := "time_slot must be one of " + strings.Join(timetable.TimeSlots, ", ")

	tests := []httpTest{
		{
			name:     "malformed body",
			method:   http.MethodPost,
			path:     "/v1/timetables",
			body:     []byte(`{"level": "one hundred"}`),
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "no entries",
			method:   http.MethodPost,
			path:     "/v1/timetables",
			body:     marshallObj(t, key),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "entries is required", map[string]string{"entries": "entries is required"}),
		},
		{
			name:     "invalid day",
			method:   http.MethodPost,
			path:     "/v1/timetables",
			body:     body(key, entry(s.crs1, "Funday", "9:00 AM")),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, daysMsg, map[string]string{"day": daysMsg}),
		},
		{
			name:     "invalid time slot",
			method:   http.MethodPost,
			path:     "/v1/timetables",
			body:     body(key, entry(s.crs1, timetable.Monday, "9:30 AM")),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, slotsMsg, map[string]string{"time_slot": slotsMsg}),
		},
		{
			name:     "level above the department's",
			method:   http.MethodPost,
			path:     "/v1/timetables",
			body:     body(s.key(500), entry(s.crs1, timetable.Monday, "9:00 AM")),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "level exceeds the department's max levels", map[string]string{
				"level": "level exceeds the department's max levels",
			}),
		},
		{
			name:   "unknown semester",
			method: http.MethodPost,
			path:   "/v1/timetables",
			body: body(
				timetable.Key{DepartmentID: s.dept.ID, Level: 100, SemesterID: core.NewID()},
				entry(s.crs1, timetable.Monday, "9:00 AM"),
			),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "period not found", map[string]string{"semester_id": "period not found"}),
		},
		{
			name:     "unknown course",
			method:   http.MethodPost,
			path:     "/v1/timetables",
			body:     body(key, entry(s.crs1, timetable.Monday, "9:00 AM"), timetable.Entry{CourseID: core.NewID(), Day: timetable.Monday, TimeSlot: "10:00 AM"}),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "one or more courses not found"),
		},
		{
			name:   "lecturer double booked",
			method: http.MethodPost,
			path:   "/v1/timetables",
			body: body(key,
				entry(s.crs1, timetable.Monday, "9:00 AM"),
				entry(s.crs3, timetable.Monday, "9:00 AM"),
				entry(s.crs2, timetable.Monday, "9:00 AM"),
			),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, conflict.Error()),
		},
	}
	app.run(t, tests)

	tts, err := app.repos.Timetables.QueryTimetables(context.Background())
	require.NoError(t, err)
	assert.Empty(t, tts, "a rejected timetable must not be saved")
}

func Test_timetableApi_set_conflictNamesBothCourses(t *testing.T) {
	app := setup(t)
	s := seedSchool(t, app)

	rec := app.serve(http.MethodPost, "/v1/timetables", marshallObj(t, timetable.NewTimetable{
		Key: s.key(100),
		Entries: []timetable.Entry{
			entry(s.crs1, timetable.Friday, "2:00 PM"),
			entry(s.crs2, timetable.Friday, "2:00 PM"),
		},
	}))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var msg string
	decode(t, rec, "message", &msg)
	assert.Contains(t, msg, s.crs1.ID)
	assert.Contains(t, msg, s.crs2.ID)
	assert.Contains(t, msg, s.lect1.ID)
}

func Test_timetableApi_set_replacesEntries(t *testing.T) {
	app := setup(t)
	s := seedSchool(t, app)
	key := s.key(100)

	first := setTimetable(t, app,
		key,
		entry(s.crs1, timetable.Monday, "9:00 AM"),
		entry(s.crs2, timetable.Monday, "10:00 AM"),
		entry(s.crs3, timetable.Monday, "9:00 AM"),
	)
	assert.Len(t, first.Entries, 3)

	// cache the stored timetable
	rec := app.serve(http.MethodGet, keyQuery(key))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var view timetable.View
	decode(t, rec, "timetable", &view)
	assert.Len(t, view.Entries, 3)

	second := setTimetable(t, app, key, entry(s.crs2, timetable.Tuesday, "1:00 PM"))
	assert.Equal(t, first.ID, second.ID, "re-setting keeps the same timetable")
	assert.Equal(t, []timetable.Entry{entry(s.crs2, timetable.Tuesday, "1:00 PM")}, second.Entries)

	rec = app.serve(http.MethodGet, keyQuery(key))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	view = timetable.View{}
	decode(t, rec, "timetable", &view)
	if assert.Len(t, view.Entries, 1) {
		assert.Equal(t, timetable.Tuesday, view.Entries[0].Day)
		if assert.NotNil(t, view.Entries[0].Course) {
			assert.Equal(t, s.crs2.Code, view.Entries[0].Course.Code)
		}
	}

	tts, err := app.repos.Timetables.QueryTimetables(context.Background())
	require.NoError(t, err)
	assert.Len(t, tts, 1)
}

func Test_timetableApi_query_followsCourseChanges(t *testing.T) {
	app := setup(t)
	s := seedSchool(t, app)
	key := s.key(100)
	tt := setTimetable(t, app,
		key,
		entry(s.crs1, timetable.Monday, "9:00 AM"),
		entry(s.crs2, timetable.Monday, "10:00 AM"),
	)

	get := func(path string) timetable.View {
		t.Helper()
		rec := app.serve(http.MethodGet, path)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var view timetable.View
		decode(t, rec, "timetable", &view)
		require.Len(t, view.Entries, 2)
		return view
	}
	view := get(keyQuery(key))
	require.NotNil(t, view.Entries[0].Course)
	assert.Equal(t, s.crs1.Code, view.Entries[0].Course.Code)

	rec := app.serve(http.MethodPatch, "/v1/courses/"+s.crs2.ID, marshallObj(t, course.CourseInput{
		Name:         "Data Structures",
		Code:         "CSC105",
		Units:        3,
		LecturerID:   s.crs2.LecturerID,
		DepartmentID: s.crs2.DepartmentID,
		Level:        s.crs2.Level,
		SemesterID:   s.crs2.SemesterID,
	}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = app.serve(http.MethodDelete, "/v1/courses/"+s.crs1.ID)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	for _, path := range []string{keyQuery(key), "/v1/timetables/" + tt.ID} {
		view = get(path)
		assert.Nil(t, view.Entries[0].Course, "%s still shows the deleted course", path)
		if assert.NotNil(t, view.Entries[1].Course, path) {
			assert.Equal(t, "CSC105", view.Entries[1].Course.Code, path)
		}
	}
}

func Test_timetableApi_query(t *testing.T) {
	app := setup(t)
	s := seedSchool(t, app)

	empty := httpTest{
		name:     "no timetables",
		method:   http.MethodGet,
		path:     "/v1/timetables",
		wantCode: http.StatusOK,
		wantData: []byte(`{"message": "Timetables found", "timetables": []}`),
	}
	app.run(t, []httpTest{empty})

	tt := setTimetable(t, app, s.key(100), entry(s.crs3, timetable.Thursday, "11:00 AM"))
	list := marshallObj(t, map[string]interface{}{"message": "Timetables found", "timetables": []timetable.Timetable{tt}})

	tests := []httpTest{
		{
			name:     "all",
			method:   http.MethodGet,
			path:     "/v1/timetables",
			wantCode: http.StatusOK,
			wantData: list,
		},
		{
			name:     "partial key",
			method:   http.MethodGet,
			path:     "/v1/timetables?department_id=" + s.dept.ID,
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "level is required", map[string]string{
				"level":       "level is required",
				"semester_id": "semester_id is required",
			}),
		},
		{
			name:     "no timetable for key",
			method:   http.MethodGet,
			path:     keyQuery(s.key(200)),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "timetable not found"),
		},
		{
			name:     "unknown id",
			method:   http.MethodGet,
			path:     "/v1/timetables/" + core.NewID(),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "timetable not found"),
		},
		{
			name:     "malformed id",
			method:   http.MethodGet,
			path:     "/v1/timetables/abc",
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "timetable not found"),
		},
	}
	app.run(t, tests)

	t.Run("by key", func(t *testing.T) {
		rec := app.serve(http.MethodGet, keyQuery(s.key(100)))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var view timetable.View
		decode(t, rec, "timetable", &view)
		assert.Equal(t, tt.ID, view.ID)
		require.Len(t, view.Entries, 1)
		require.NotNil(t, view.Entries[0].Course)
		assert.Equal(t, s.crs3.ID, view.Entries[0].Course.ID)
	})

	t.Run("by id", func(t *testing.T) {
		rec := app.serve(http.MethodGet, "/v1/timetables/"+tt.ID)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var view timetable.View
		decode(t, rec, "timetable", &view)
		assert.Equal(t, s.key(100), timetable.Key{DepartmentID: view.DepartmentID, Level: view.Level, SemesterID: view.SemesterID})
	})
}

func Test_timetableApi_exportICS(t *testing.T) {
	app := setup(t)
	s := seedSchool(t, app)
	tt := setTimetable(t, app, s.key(100),
		entry(s.crs1, timetable.Monday, "9:00 AM"),
		entry(s.crs3, timetable.Wednesday, "2:00 PM"),
	)
	path := fmt.Sprintf("/v1/timetables/%s/ics", tt.ID)

	tests := []httpTest{
		{
			name:     "bad from",
			method:   http.MethodGet,
			path:     path + "?from=08/01/2024",
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "from must be a date formatted as YYYY-MM-DD", map[string]string{
				"from": "from must be a date formatted as YYYY-MM-DD",
			}),
		},
		{
			name:     "zero weeks",
			method:   http.MethodGet,
			path:     path + "?weeks=0",
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "weeks must be a positive number", map[string]string{
				"weeks": "weeks must be a positive number",
			}),
		},
		{
			name:     "unknown timetable",
			method:   http.MethodGet,
			path:     fmt.Sprintf("/v1/timetables/%s/ics", core.NewID()),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "timetable not found"),
		},
	}
	app.run(t, tests)

	rec := app.serve(http.MethodGet, path+"?from=2024-01-10&weeks=2")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/calendar; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "timetable-"+tt.ID+".ics")

	out := rec.Body.String()
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:CSC101 - Course CSC101")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;COUNT=2")
	assert.Contains(t, out, "DTSTART:20240108T090000Z")
	assert.Contains(t, out, "DTSTART:20240110T140000Z")
}
