package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/timetable"
)

var errObjectNotInCtx = errors.New("object not found in echo.Context")

// errorResponse is the body of every failed request.
type errorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// Client errors are answered with 400 and their message. Anything else is logged and answered with 500.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		code := http.StatusBadRequest
		var resp errorResponse

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			resp.Message = fmt.Sprint(origErr.Message)
		case validator.ValidationErrors:
			resp.Fields = make(map[string]string, len(origErr))
			for i, vErr := range origErr {
				msg := vErr.Translate(translator)
				if i == 0 {
					resp.Message = msg
				}
				resp.Fields[vErr.Field()] = msg
			}
		case *core.ValidationError:
			resp.Message = origErr.Error()
			if origErr.Fields != nil {
				resp.Fields = make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					if resp.Message == "" {
						resp.Message = fErr.Error
					}
					resp.Fields[fErr.Field] = fErr.Error
				}
			}
		case *timetable.ConflictError:
			resp.Message = origErr.Error()
		case *core.NotFoundError:
			resp.Message = origErr.Error()
		default: // any other error is a server error
			code = http.StatusInternalServerError
			resp.Message = http.StatusText(http.StatusInternalServerError)
			logger.Error(resp.Message, errors.Wrap(err, resp.Message), map[string]interface{}{
				"method": ctx.Request().Method,
				"path":   ctx.Request().URL.Path,
			})
			if ctx.Echo().Debug {
				resp.Message = err.Error()
			}

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, resp)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
