package echoapi

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/timetable"
)

const (
	icsDateLayout = "2006-01-02"
	icsMIMEType   = "text/calendar; charset=utf-8"
)

type timetableApi struct {
	svc      *timetable.Service
	validate *validator.Validate
}

func registerTimetableAPI(g *echo.Group, deps *Deps) {
	api := timetableApi{svc: deps.Services.Timetable, validate: deps.Validate}

	tg := g.Group("/timetables")
	tg.POST("", api.set)
	tg.GET("", api.query)
	dg := tg.Group("/:id", objectMiddleware("id", api.load))
	dg.GET("", api.retrieve)
	dg.GET("/ics", api.exportICS)
}

func (api *timetableApi) load(ctx context.Context, id string) (interface{}, error) {
	return api.svc.GetByID(ctx, id)
}

func (api *timetableApi) set(ctx echo.Context) error {
	var data timetable.NewTimetable
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTimetable")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	tt, err := api.svc.Set(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "setting timetable")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Timetable set", "timetable": tt})
}

// query returns the timetable of the department, level and semester query params, or all of them
// when none is provided.
func (api *timetableApi) query(ctx echo.Context) error {
	key := new(timetable.Key)
	if err := ctx.Bind(key); err != nil {
		return errors.Wrap(err, "binding to Key")
	}
	key.Clean()

	if key.IsZero() {
		tts, err := api.svc.List(ctx.Request().Context())
		if err != nil {
			return errors.Wrap(err, "listing timetables")
		}
		if tts == nil {
			tts = []timetable.Timetable{}
		}
		return ctx.JSON(http.StatusOK, echo.Map{"message": "Timetables found", "timetables": tts})
	}

	if err := api.validate.Struct(key); err != nil {
		return err
	}
	view, err := api.svc.Get(ctx.Request().Context(), *key)
	if err != nil {
		return errors.Wrap(err, "getting timetable")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Timetable found", "timetable": view})
}

func (api *timetableApi) retrieve(ctx echo.Context) error {
	tt, err := contextObject[timetable.Timetable](ctx)
	if err != nil {
		return err
	}
	view, err := api.svc.Populate(ctx.Request().Context(), tt)
	if err != nil {
		return errors.Wrap(err, "populating timetable")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Timetable found", "timetable": view})
}

// exportICS serves the timetable as an iCalendar file.
// `?from=YYYY-MM-DD` picks the first week (defaults to the current one), `?weeks=N` the number of weeks.
func (api *timetableApi) exportICS(ctx echo.Context) error {
	tt, err := contextObject[timetable.Timetable](ctx)
	if err != nil {
		return err
	}

	from := core.Now()
	if val := ctx.QueryParam("from"); val != "" {
		if from, err = time.Parse(icsDateLayout, val); err != nil {
			return core.NewFieldError("from", "from must be a date formatted as YYYY-MM-DD")
		}
	}
	weeks := timetable.DefaultWeeks
	if val := ctx.QueryParam("weeks"); val != "" {
		if weeks, err = strconv.Atoi(val); err != nil || weeks <= 0 {
			return core.NewFieldError("weeks", "weeks must be a positive number")
		}
	}

	view, err := api.svc.Populate(ctx.Request().Context(), tt)
	if err != nil {
		return errors.Wrap(err, "populating timetable")
	}
	var buf bytes.Buffer
	if err = timetable.WriteICS(&buf, view, from, weeks); err != nil {
		return errors.Wrap(err, "writing ics")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "timetable-"+tt.ID+".ics"))
	return ctx.Blob(http.StatusOK, icsMIMEType, buf.Bytes())
}
