package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core/admission"
	"github.com/PrimotionStudio/z1academic/core/settings"
)

type admissionApi struct {
	svc      *admission.Service
	validate *validator.Validate
}

func registerAdmissionAPI(g *echo.Group, deps *Deps) {
	api := admissionApi{svc: deps.Services.Admission, validate: deps.Validate}

	ag := g.Group("/applications")
	ag.POST("", api.create)
	ag.GET("", api.query)
	dg := ag.Group("/:id", objectMiddleware("id", api.load))
	dg.GET("", api.retrieve)
	dg.PATCH("", api.review)
}

func (api *admissionApi) load(ctx context.Context, id string) (interface{}, error) {
	return api.svc.GetByID(ctx, id)
}

func (api *admissionApi) create(ctx echo.Context) error {
	var data admission.NewApplication
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewApplication")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	app, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating application")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "Application under review", "application": app})
}

func (api *admissionApi) query(ctx echo.Context) error {
	filter := new(admission.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}

	apps, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying applications")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Applications found", "applications": apps})
}

func (api *admissionApi) retrieve(ctx echo.Context) error {
	app, err := contextObject[admission.Application](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Application found", "application": app})
}

func (api *admissionApi) review(ctx echo.Context) error {
	app, err := contextObject[admission.Application](ctx)
	if err != nil {
		return err
	}

	var data admission.Review
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Review")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if app, err = api.svc.Review(ctx.Request().Context(), app, data); err != nil {
		return errors.Wrap(err, "reviewing application")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Application " + app.Status, "application": app})
}

// Settings

type settingsApi struct {
	svc      *settings.Service
	validate *validator.Validate
}

func registerSettingsAPI(g *echo.Group, deps *Deps) {
	api := settingsApi{svc: deps.Services.Settings, validate: deps.Validate}

	g.GET("/settings", api.retrieve)
	g.PUT("/settings", api.put)
}

func (api *settingsApi) retrieve(ctx echo.Context) error {
	inst, err := api.svc.Get(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "getting settings")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Settings found", "settings": inst})
}

func (api *settingsApi) put(ctx echo.Context) error {
	var data settings.InstitutionInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to InstitutionInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	inst, err := api.svc.Put(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "saving settings")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Settings updated", "settings": inst})
}
