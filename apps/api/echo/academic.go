package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core/academic"
)

type academicApi struct {
	svc      *academic.Service
	validate *validator.Validate
}

func registerAcademicAPI(g *echo.Group, deps *Deps) {
	api := academicApi{svc: deps.Services.Academic, validate: deps.Validate}

	fg := g.Group("/faculties")
	fg.POST("", api.createFaculty)
	fg.GET("", api.queryFaculties)
	fdg := fg.Group("/:id", objectMiddleware("id", api.loadFaculty))
	fdg.GET("", api.retrieveFaculty)
	fdg.PATCH("", api.updateFaculty)

	dg := g.Group("/departments")
	dg.POST("", api.createDepartment)
	dg.GET("", api.queryDepartments)
	ddg := dg.Group("/:id", objectMiddleware("id", api.loadDepartment))
	ddg.GET("", api.retrieveDepartment)
	ddg.PATCH("", api.updateDepartment)

	lg := g.Group("/lecturers")
	lg.POST("", api.createLecturer)
	lg.GET("", api.queryLecturers)
	lg.GET("/:id", api.retrieveLecturer)

	for _, kind := range []academic.TermKind{academic.KindSession, academic.KindPeriod} {
		ta := termApi{academicApi: api, kind: kind}
		tg := g.Group("/" + string(kind) + "s")
		tg.POST("", ta.create)
		tg.GET("", ta.query)
		tg.GET("/active", ta.retrieveActive)
		tdg := tg.Group("/:id", objectMiddleware("id", ta.load))
		tdg.GET("", ta.retrieve)
		tdg.PATCH("", ta.update)
		tdg.PATCH("/activate", ta.activate)
	}
}

// Faculties

func (api *academicApi) loadFaculty(ctx context.Context, id string) (interface{}, error) {
	return api.svc.GetFaculty(ctx, id)
}

func (api *academicApi) createFaculty(ctx echo.Context) error {
	var data academic.FacultyInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FacultyInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	fac, err := api.svc.CreateFaculty(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating faculty")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "New faculty added", "faculty": fac})
}

func (api *academicApi) queryFaculties(ctx echo.Context) error {
	facs, err := api.svc.QueryFaculties(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying faculties")
	}
	if facs == nil {
		facs = []academic.Faculty{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Faculties found", "faculties": facs})
}

func (api *academicApi) retrieveFaculty(ctx echo.Context) error {
	fac, err := contextObject[academic.Faculty](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Faculty found", "faculty": fac})
}

func (api *academicApi) updateFaculty(ctx echo.Context) error {
	fac, err := contextObject[academic.Faculty](ctx)
	if err != nil {
		return err
	}

	var data academic.FacultyInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FacultyInput")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if fac, err = api.svc.UpdateFaculty(ctx.Request().Context(), fac, data); err != nil {
		return errors.Wrap(err, "updating faculty")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Faculty edited", "faculty": fac})
}

// Departments

func (api *academicApi) loadDepartment(ctx context.Context, id string) (interface{}, error) {
	return api.svc.GetDepartment(ctx, id)
}

func (api *academicApi) createDepartment(ctx echo.Context) error {
	var data academic.DepartmentInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DepartmentInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	dept, err := api.svc.CreateDepartment(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating department")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "New department added", "department": dept})
}

func (api *academicApi) queryDepartments(ctx echo.Context) error {
	filter := new(academic.DepartmentFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to DepartmentFilter")
	}

	depts, err := api.svc.QueryDepartments(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying departments")
	}
	if depts == nil {
		depts = []academic.Department{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Departments found", "departments": depts})
}

func (api *academicApi) retrieveDepartment(ctx echo.Context) error {
	dept, err := contextObject[academic.Department](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Department found", "department": dept})
}

func (api *academicApi) updateDepartment(ctx echo.Context) error {
	dept, err := contextObject[academic.Department](ctx)
	if err != nil {
		return err
	}

	var data academic.DepartmentInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to DepartmentInput")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if dept, err = api.svc.UpdateDepartment(ctx.Request().Context(), dept, data); err != nil {
		return errors.Wrap(err, "updating department")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Department edited", "department": dept})
}

// Lecturers

func (api *academicApi) createLecturer(ctx echo.Context) error {
	var data academic.NewLecturer
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLecturer")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	lect, err := api.svc.CreateLecturer(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating lecturer")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "New lecturer added", "lecturer": lect})
}

func (api *academicApi) queryLecturers(ctx echo.Context) error {
	lects, err := api.svc.QueryLecturers(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying lecturers")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Lecturers found", "lecturers": lects})
}

func (api *academicApi) retrieveLecturer(ctx echo.Context) error {
	lect, err := api.svc.GetLecturerDetail(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Lecturer found", "lecturer": lect})
}

// Sessions & Periods

// termApi serves sessions and periods, which only differ by kind.
type termApi struct {
	academicApi
	kind academic.TermKind
}

func (api *termApi) load(ctx context.Context, id string) (interface{}, error) {
	return api.svc.GetTerm(ctx, api.kind, id)
}

func (api *termApi) create(ctx echo.Context) error {
	var data academic.TermInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TermInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	term, err := api.svc.CreateTerm(ctx.Request().Context(), api.kind, data)
	if err != nil {
		return errors.Wrapf(err, "creating %s", api.kind)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "New " + string(api.kind) + " added", string(api.kind): term})
}

func (api *termApi) query(ctx echo.Context) error {
	terms, err := api.svc.QueryTerms(ctx.Request().Context(), api.kind)
	if err != nil {
		return errors.Wrapf(err, "querying %ss", api.kind)
	}
	if terms == nil {
		terms = []academic.Term{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": api.kind.Label() + "s found", string(api.kind) + "s": terms})
}

func (api *termApi) retrieve(ctx echo.Context) error {
	term, err := contextObject[academic.Term](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": api.kind.Label() + " found", string(api.kind): term})
}

func (api *termApi) retrieveActive(ctx echo.Context) error {
	term, err := api.svc.GetActiveTerm(ctx.Request().Context(), api.kind)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": api.kind.Label() + " found", string(api.kind): term})
}

func (api *termApi) update(ctx echo.Context) error {
	term, err := contextObject[academic.Term](ctx)
	if err != nil {
		return err
	}

	var data academic.TermInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to TermInput")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if term, err = api.svc.UpdateTerm(ctx.Request().Context(), api.kind, term, data); err != nil {
		return errors.Wrapf(err, "updating %s", api.kind)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": api.kind.Label() + " edited", string(api.kind): term})
}

func (api *termApi) activate(ctx echo.Context) error {
	term, err := contextObject[academic.Term](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.ActivateTerm(ctx.Request().Context(), api.kind, term.ID); err != nil {
		return errors.Wrapf(err, "activating %s", api.kind)
	}
	if term, err = api.svc.GetTerm(ctx.Request().Context(), api.kind, term.ID); err != nil {
		return errors.Wrapf(err, "reloading %s", api.kind)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": api.kind.Label() + " activated", string(api.kind): term})
}
