package tests

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/academic"
	"github.com/PrimotionStudio/z1academic/core/user"
	"github.com/PrimotionStudio/z1academic/tests"
)

func Test_academicApi_faculties(t *testing.T) {
	app := setup(t)

	rec := app.serve(http.MethodPost, "/v1/faculties", []byte(`{"name": "  Engineering "}`))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var fac academic.Faculty
	decode(t, rec, "faculty", &fac)
	assert.Equal(t, "Engineering", fac.Name)

	tests := []httpTest{
		{
			name:     "create without name",
			method:   http.MethodPost,
			path:     "/v1/faculties",
			body:     []byte(`{"name": "   "}`),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "name is required", map[string]string{"name": "name is required"}),
		},
		{
			name:     "query",
			method:   http.MethodGet,
			path:     "/v1/faculties",
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]interface{}{"message": "Faculties found", "faculties": []academic.Faculty{fac}}),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     "/v1/faculties/" + fac.ID,
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]interface{}{"message": "Faculty found", "faculty": fac}),
		},
		{
			name:     "retrieve unknown",
			method:   http.MethodGet,
			path:     "/v1/faculties/" + core.NewID(),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "faculty not found"),
		},
	}
	app.run(t, tests)

	rec = app.serve(http.MethodPatch, "/v1/faculties/"+fac.ID, []byte(`{"name": "Engineering & Technology"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var edited academic.Faculty
	decode(t, rec, "faculty", &edited)
	assert.Equal(t, fac.ID, edited.ID)
	assert.Equal(t, "Engineering & Technology", edited.Name)
}

func Test_academicApi_departments(t *testing.T) {
	app := setup(t)
	sci := testutil.CreateFaculty(t, app.repos.Faculties, "Science")
	arts := testutil.CreateFaculty(t, app.repos.Faculties, "Arts")
	history := testutil.CreateDepartment(t, app.repos.Departments, arts.ID, "History", 400)

	body := func(facultyID string, maxLevels int) []byte {
		return marshallObj(t, map[string]interface{}{
			"faculty_id":    facultyID,
			"name":          "Physics",
			"max_levels":    maxLevels,
			"program_title": "B.Sc. Physics",
			"jamb_cut_off":  200,
		})
	}

	tests := []httpTest{
		{
			name:     "unknown faculty",
			method:   http.MethodPost,
			path:     "/v1/departments",
			body:     body(core.NewID(), 400),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "faculty not found", map[string]string{"faculty_id": "faculty not found"}),
		},
		{
			name:     "levels not a multiple of 100",
			method:   http.MethodPost,
			path:     "/v1/departments",
			body:     body(sci.ID, 450),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "max_levels must be a positive multiple of 100", map[string]string{
				"max_levels": "max_levels must be a positive multiple of 100",
			}),
		},
		{
			name:     "malformed faculty id",
			method:   http.MethodPost,
			path:     "/v1/departments",
			body:     body("science", 400),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "faculty_id must be a valid ID", map[string]string{"faculty_id": "faculty_id must be a valid ID"}),
		},
	}
	app.run(t, tests)

	rec := app.serve(http.MethodPost, "/v1/departments", body(sci.ID, 500))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var physics academic.Department
	decode(t, rec, "department", &physics)
	assert.Equal(t, sci.ID, physics.FacultyID)
	assert.Equal(t, 500, physics.MaxLevels)

	app.run(t, []httpTest{
		{
			name:     "query all",
			method:   http.MethodGet,
			path:     "/v1/departments",
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]interface{}{"message": "Departments found", "departments": []academic.Department{history, physics}}),
		},
		{
			name:     "query by faculty",
			method:   http.MethodGet,
			path:     "/v1/departments?faculty_id=" + arts.ID,
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]interface{}{"message": "Departments found", "departments": []academic.Department{history}}),
		},
	})

	// move physics to arts
	rec = app.serve(http.MethodPatch, "/v1/departments/"+physics.ID, body(arts.ID, 400))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, "department", &physics)
	assert.Equal(t, arts.ID, physics.FacultyID)
	assert.Equal(t, 400, physics.MaxLevels)
}

func Test_academicApi_lecturers(t *testing.T) {
	app := setup(t)
	fac := testutil.CreateFaculty(t, app.repos.Faculties, "Science")
	dept := testutil.CreateDepartment(t, app.repos.Departments, fac.ID, "Chemistry", 400)
	usr := testutil.CreateUser(t, app.repos.Users, "Ngozi Uche", "ngozi@test.ng", "+2348000000010", user.RoleUser)

	rec := app.serve(http.MethodPost, "/v1/lecturers", marshallObj(t, academic.NewLecturer{UserID: usr.ID, DepartmentID: dept.ID}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var lect academic.LecturerDetail
	decode(t, rec, "lecturer", &lect)
	assert.Equal(t, dept.ID, lect.DepartmentID)
	require.NotNil(t, lect.User)
	assert.Equal(t, user.RoleLecturer, lect.User.Role, "the user becomes a lecturer")

	stored, err := app.repos.Users.GetUser(context.Background(), usr.ID)
	require.NoError(t, err)
	assert.Equal(t, user.RoleLecturer, stored.Role)

	tests := []httpTest{
		{
			name:     "same user twice",
			method:   http.MethodPost,
			path:     "/v1/lecturers",
			body:     marshallObj(t, academic.NewLecturer{UserID: usr.ID, DepartmentID: dept.ID}),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, academic.ErrLecturerExists.Error(), map[string]string{"user_id": academic.ErrLecturerExists.Error()}),
		},
		{
			name:     "unknown user",
			method:   http.MethodPost,
			path:     "/v1/lecturers",
			body:     marshallObj(t, academic.NewLecturer{UserID: core.NewID(), DepartmentID: dept.ID}),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "user not found", map[string]string{"user_id": "user not found"}),
		},
		{
			name:     "unknown department",
			method:   http.MethodPost,
			path:     "/v1/lecturers",
			body:     marshallObj(t, academic.NewLecturer{UserID: usr.ID, DepartmentID: core.NewID()}),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "department not found", map[string]string{"department_id": "department not found"}),
		},
		{
			name:     "query",
			method:   http.MethodGet,
			path:     "/v1/lecturers",
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]interface{}{"message": "Lecturers found", "lecturers": []academic.LecturerDetail{lect}}),
		},
		{
			name:     "retrieve",
			method:   http.MethodGet,
			path:     "/v1/lecturers/" + lect.ID,
			wantCode: http.StatusOK,
			wantData: marshallObj(t, map[string]interface{}{"message": "Lecturer found", "lecturer": lect}),
		},
		{
			name:     "retrieve unknown",
			method:   http.MethodGet,
			path:     "/v1/lecturers/" + core.NewID(),
			wantCode: http.StatusBadRequest,
			wantData: errBody(t, "lecturer not found"),
		},
	}
	app.run(t, tests)
}

func Test_academicApi_terms(t *testing.T) {
	app := setup(t)

	for _, kind := range []academic.TermKind{academic.KindSession, academic.KindPeriod} {
		kind := kind
		t.Run(string(kind), func(t *testing.T) {
			base := "/v1/" + string(kind) + "s"

			app.run(t, []httpTest{
				{
					name:     "no active",
					method:   http.MethodGet,
					path:     base + "/active",
					wantCode: http.StatusBadRequest,
					wantData: errBody(t, string(kind)+" not found"),
				},
			})

			first := testutil.CreateTerm(t, app.repos.Terms, kind, "First")
			second := testutil.CreateTerm(t, app.repos.Terms, kind, "Second")

			rec := app.serve(http.MethodPatch, base+"/"+first.ID+"/activate")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			rec = app.serve(http.MethodPatch, base+"/"+second.ID+"/activate")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var activated academic.Term
			decode(t, rec, string(kind), &activated)
			assert.True(t, activated.IsActive)

			rec = app.serve(http.MethodGet, base+"/active")
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var active academic.Term
			decode(t, rec, string(kind), &active)
			assert.Equal(t, second.ID, active.ID)

			terms, err := app.repos.Terms.QueryTerms(context.Background(), kind)
			require.NoError(t, err)
			var nActive int
			for _, term := range terms {
				if term.IsActive {
					nActive++
				}
			}
			assert.Equal(t, 1, nActive, "only one %s is active", kind)

			rec = app.serve(http.MethodPatch, base+"/"+first.ID, []byte(`{"name": "First (renamed)"}`))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var renamed academic.Term
			decode(t, rec, string(kind), &renamed)
			assert.Equal(t, "First (renamed)", renamed.Name)
			assert.False(t, renamed.IsActive)
		})
	}
}
