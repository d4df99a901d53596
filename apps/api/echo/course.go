package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core/course"
)

type courseApi struct {
	svc      *course.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, deps *Deps) {
	api := courseApi{svc: deps.Services.Course, validate: deps.Validate}

	cg := g.Group("/courses")
	cg.POST("", api.create)
	cg.GET("", api.query)
	cdg := cg.Group("/:id", objectMiddleware("id", api.load))
	cdg.GET("", api.retrieve)
	cdg.PATCH("", api.update)
	cdg.DELETE("", api.destroy)

	eg := g.Group("/electives")
	eg.POST("", api.createElective)
	eg.GET("", api.queryElectives)
	edg := eg.Group("/:id", objectMiddleware("id", api.loadElective))
	edg.PATCH("", api.updateElective)
	edg.DELETE("", api.destroyElective)
}

// Courses

func (api *courseApi) load(ctx context.Context, id string) (interface{}, error) {
	return api.svc.GetByID(ctx, id)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.CourseInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CourseInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	crs, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "New course added", "course": crs})
}

func (api *courseApi) query(ctx echo.Context) error {
	filter := new(course.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	filter.Clean()

	courses, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	if courses == nil {
		courses = []course.Course{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Courses found", "courses": courses})
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	crs, err := contextObject[course.Course](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Course found", "course": crs})
}

func (api *courseApi) update(ctx echo.Context) error {
	crs, err := contextObject[course.Course](ctx)
	if err != nil {
		return err
	}

	var data course.CourseInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CourseInput")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if crs, err = api.svc.Update(ctx.Request().Context(), crs, data); err != nil {
		return errors.Wrap(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Course updated", "course": crs})
}

func (api *courseApi) destroy(ctx echo.Context) error {
	crs, err := contextObject[course.Course](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), crs); err != nil {
		return errors.Wrap(err, "deleting course")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Course deleted", "course": crs})
}

// Electives

func (api *courseApi) loadElective(ctx context.Context, id string) (interface{}, error) {
	return api.svc.GetElective(ctx, id)
}

func (api *courseApi) createElective(ctx echo.Context) error {
	var data course.ElectiveInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ElectiveInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	elec, err := api.svc.CreateElective(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating elective")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "Elective added", "elective": elec})
}

func (api *courseApi) queryElectives(ctx echo.Context) error {
	filter := new(course.ElectiveFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to ElectiveFilter")
	}

	elecs, err := api.svc.QueryElectives(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying electives")
	}
	if elecs == nil {
		elecs = []course.Elective{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Electives found", "electives": elecs})
}

func (api *courseApi) updateElective(ctx echo.Context) error {
	elec, err := contextObject[course.Elective](ctx)
	if err != nil {
		return err
	}

	var data course.ElectiveInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ElectiveInput")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if elec, err = api.svc.UpdateElective(ctx.Request().Context(), elec, data); err != nil {
		return errors.Wrap(err, "updating elective")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Elective updated", "elective": elec})
}

func (api *courseApi) destroyElective(ctx echo.Context) error {
	elec, err := contextObject[course.Elective](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeleteElective(ctx.Request().Context(), elec); err != nil {
		return errors.Wrap(err, "deleting elective")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Elective deleted", "elective": elec})
}
