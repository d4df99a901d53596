package echoapi

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const objectKey = "object"

// objectMiddleware loads the document named by the `param` path parameter and stores it under objectKey.
func objectMiddleware(param string, load func(ctx context.Context, id string) (interface{}, error)) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			obj, err := load(ctx.Request().Context(), ctx.Param(param))
			if err != nil {
				return err
			}
			ctx.Set(objectKey, obj)
			return next(ctx)
		}
	}
}

// contextObject returns the document stored by objectMiddleware.
func contextObject[T any](ctx echo.Context) (T, error) {
	obj, ok := ctx.Get(objectKey).(T)
	if !ok {
		return obj, errors.Wrap(errObjectNotInCtx, "retrieving object from context")
	}
	return obj, nil
}
