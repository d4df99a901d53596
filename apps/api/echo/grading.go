package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core/grading"
)

type gradingApi struct {
	svc      *grading.Service
	validate *validator.Validate
}

func registerGradingAPI(g *echo.Group, deps *Deps) {
	api := gradingApi{svc: deps.Services.Grading, validate: deps.Validate}

	sg := g.Group("/grade-schemes")
	sg.POST("", api.create)
	sg.GET("", api.query)
	dg := sg.Group("/:id", objectMiddleware("id", api.load))
	dg.GET("", api.retrieve)
	dg.PATCH("", api.update)
}

func (api *gradingApi) load(ctx context.Context, id string) (interface{}, error) {
	return api.svc.GetByID(ctx, id)
}

func (api *gradingApi) create(ctx echo.Context) error {
	var data grading.SchemeInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SchemeInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sch, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating grade scheme")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "New grade scheme added", "grade_scheme": sch})
}

func (api *gradingApi) query(ctx echo.Context) error {
	filter := new(grading.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	schemes, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying grade schemes")
	}
	if schemes == nil {
		schemes = []grading.Scheme{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Grade schemes found", "grade_schemes": schemes})
}

func (api *gradingApi) retrieve(ctx echo.Context) error {
	sch, err := contextObject[grading.Scheme](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Grade scheme found", "grade_scheme": sch})
}

func (api *gradingApi) update(ctx echo.Context) error {
	sch, err := contextObject[grading.Scheme](ctx)
	if err != nil {
		return err
	}

	var data grading.SchemeInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SchemeInput")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if sch, err = api.svc.Update(ctx.Request().Context(), sch, data); err != nil {
		return errors.Wrap(err, "updating grade scheme")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Grade scheme updated", "grade_scheme": sch})
}
