package exportcalendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/export_calendar"
	"medmate/internal/http/handlers/response"

	"github.com/stretchr/testify/assert"
)

func TestExportCalendarHandler(t *testing.T) {
	calendar := []byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	handler := New(services.ServiceFunc[service.Input, service.Result](
		func(ctx context.Context, input service.Input) (service.Result, error) {
			return service.Result{Calendar: calendar}, nil
		},
	))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/reminders/calendar.ics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, response.CONTENT_TYPE_CALENDAR, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), FILENAME)
	assert.Equal(t, calendar, rr.Body.Bytes())
}

func TestExportCalendarHandlerUnauthorized(t *testing.T) {
	handler := New(services.ServiceFunc[service.Input, service.Result](
		func(ctx context.Context, input service.Input) (result service.Result, err error) {
			return result, user.ErrUserDoesNotExist
		},
	))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/reminders/calendar.ics", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
