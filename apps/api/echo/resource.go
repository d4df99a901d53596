package echoapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/resource"
)

const uploadField = "file"

type resourceApi struct {
	svc      *resource.Service
	validate *validator.Validate
	kind     resource.Kind
}

func registerResourceAPI(g *echo.Group, deps *Deps) {
	for _, kind := range []resource.Kind{resource.KindBook, resource.KindVideo} {
		api := resourceApi{svc: deps.Services.Resource, validate: deps.Validate, kind: kind}

		rg := g.Group("/" + string(kind) + "s")
		rg.POST("", api.create)
		rg.GET("", api.queryPublished)
		rg.GET("/unpublished", api.queryUnpublished)
		dg := rg.Group("/:id", objectMiddleware("id", api.load))
		dg.GET("", api.retrieve)
		dg.PATCH("", api.setStatus)
		dg.DELETE("", api.destroy)
	}

	api := resourceApi{svc: deps.Services.Resource}
	g.POST("/uploads", api.upload)
}

// label is the capitalized kind, eg. "Book".
func (api *resourceApi) label() string {
	return strings.ToUpper(string(api.kind[:1])) + string(api.kind[1:])
}

func (api *resourceApi) load(ctx context.Context, id string) (interface{}, error) {
	return api.svc.GetByID(ctx, api.kind, id)
}

func (api *resourceApi) create(ctx echo.Context) error {
	var data resource.Input
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrapf(err, "binding %s to Input", api.kind)
	}
	if err := data.Validate(api.kind, api.validate); err != nil {
		return err
	}

	res, err := api.svc.Create(ctx.Request().Context(), api.kind, data)
	if err != nil {
		return errors.Wrapf(err, "creating %s", api.kind)
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": api.label() + " created successfully", string(api.kind): res})
}

func (api *resourceApi) queryPublished(ctx echo.Context) error {
	return api.query(ctx, resource.StatusPublished)
}

func (api *resourceApi) queryUnpublished(ctx echo.Context) error {
	return api.query(ctx, resource.StatusUnpublished)
}

func (api *resourceApi) query(ctx echo.Context, status string) error {
	resources, err := api.svc.Query(ctx.Request().Context(), api.kind, status)
	if err != nil {
		return errors.Wrapf(err, "querying %ss", api.kind)
	}
	if resources == nil {
		resources = []resource.Resource{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": api.label() + "s found", string(api.kind) + "s": resources})
}

func (api *resourceApi) retrieve(ctx echo.Context) error {
	res, err := contextObject[resource.Resource](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": api.label() + " found", string(api.kind): res})
}

func (api *resourceApi) setStatus(ctx echo.Context) error {
	res, err := contextObject[resource.Resource](ctx)
	if err != nil {
		return err
	}

	var data resource.StatusUpdate
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusUpdate")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if res, err = api.svc.SetStatus(ctx.Request().Context(), api.kind, res, data); err != nil {
		return errors.Wrapf(err, "updating %s", api.kind)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": api.label() + " updated successfully", string(api.kind): res})
}

func (api *resourceApi) destroy(ctx echo.Context) error {
	res, err := contextObject[resource.Resource](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), api.kind, res); err != nil {
		return errors.Wrapf(err, "deleting %s", api.kind)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": api.label() + " deleted successfully", string(api.kind): res})
}

// upload stores the multipart `file` field and returns where it can be downloaded from.
func (api *resourceApi) upload(ctx echo.Context) error {
	fh, err := ctx.FormFile(uploadField)
	if err != nil {
		return core.NewFieldError(uploadField, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded file")
	}
	defer f.Close()

	up, err := api.svc.Upload(ctx.Request().Context(), fh.Filename, f, fh.Size, fh.Header.Get(echo.HeaderContentType))
	if err != nil {
		return errors.Wrap(err, "uploading file")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "File uploaded", "upload": up})
}
