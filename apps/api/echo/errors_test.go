package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/PrimotionStudio/z1academic/core"
	"github.com/PrimotionStudio/z1academic/core/timetable"
)

type logRecord struct {
	level string
	msg   string
}

type memLogger struct {
	records []logRecord
}

var _ core.Logger = (*memLogger)(nil) // interface compliance check

func (l *memLogger) log(level, msg string) { l.records = append(l.records, logRecord{level, msg}) }

func (l *memLogger) Debug(msg string, _ ...interface{}) { l.log("debug", msg) }
func (l *memLogger) Info(msg string, _ ...interface{})  { l.log("info", msg) }
func (l *memLogger) Warn(msg string, _ ...interface{})  { l.log("warn", msg) }
func (l *memLogger) Error(msg string, _ ...interface{}) { l.log("error", msg) }
func (l *memLogger) Fatal(msg string, _ ...interface{}) { l.log("fatal", msg) }

func TestAppHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		method       string
		debug        bool
		wantCode     int
		wantBody     string
		wantLogged   bool
		wantShutdown bool
	}{
		{
			name:     "field error",
			err:      errors.Wrap(core.NewFieldError("level", "level is required"), "creating course"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"message": "level is required", "fields": {"level": "level is required"}}`,
		},
		{
			name: "validation error without message",
			err: core.NewValidationError(nil,
				core.FieldError{Field: "author", Error: "author is required"},
			),
			wantCode: http.StatusBadRequest,
			wantBody: `{"message": "author is required", "fields": {"author": "author is required"}}`,
		},
		{
			name:     "not found",
			err:      errors.Wrap(core.NewNotFoundError("course"), "loading course"),
			wantCode: http.StatusBadRequest,
			wantBody: `{"message": "course not found"}`,
		},
		{
			name: "timetable conflict",
			err: &timetable.ConflictError{
				LecturerID: "l1", CourseID: "c2", ConflictingCourseID: "c1", Day: timetable.Monday, TimeSlot: "9:00 AM",
			},
			wantCode: http.StatusBadRequest,
			wantBody: `{"message": "lecturer l1 is already booked for course c1 on Monday at 9:00 AM (conflicts with course c2)"}`,
		},
		{
			name:     "http error",
			err:      echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request Entity Too Large"),
			wantCode: http.StatusRequestEntityTooLarge,
			wantBody: `{"message": "Request Entity Too Large"}`,
		},
		{
			name:       "server error",
			err:        errors.New("connection reset"),
			wantCode:   http.StatusInternalServerError,
			wantBody:   `{"message": "Internal Server Error"}`,
			wantLogged: true,
		},
		{
			name:       "server error in debug mode",
			err:        errors.Wrap(errors.New("connection reset"), "querying courses"),
			debug:      true,
			wantCode:   http.StatusInternalServerError,
			wantBody:   `{"message": "querying courses: connection reset"}`,
			wantLogged: true,
		},
		{
			name:         "shutdown",
			err:          errors.Wrap(core.NewShutdownError("data integrity issue"), "saving"),
			wantCode:     http.StatusInternalServerError,
			wantBody:     `{"message": "Internal Server Error"}`,
			wantLogged:   true,
			wantShutdown: true,
		},
		{
			name:     "head request",
			err:      core.NewNotFoundError("course"),
			method:   http.MethodHead,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := new(memLogger)
			var shutdown bool
			handler := newAppHTTPErrorHandler(logger, nil, func() { shutdown = true })

			e := echo.New()
			e.Debug = tt.debug
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			rec := httptest.NewRecorder()
			ctx := e.NewContext(httptest.NewRequest(method, "/v1/courses", nil), rec)

			handler(tt.err, ctx)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			} else {
				assert.Empty(t, rec.Body.String())
			}
			assert.Equal(t, tt.wantLogged, len(logger.records) > 0)
			assert.Equal(t, tt.wantShutdown, shutdown)
		})
	}
}
