package setreminderactive

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/set_reminder_active"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(handler http.Handler, url string, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(http.MethodPut, "/reminders/{reminderID}/active", handler)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, url, strings.NewReader(body)))
	return rr
}

func TestSetReminderActiveHandler(t *testing.T) {
	for _, isActive := range []bool{true, false} {
		var captured *service.Input
		handler := New(services.ServiceFunc[service.Input, service.Result](
			func(ctx context.Context, input service.Input) (service.Result, error) {
				captured = &input
				return service.Result{Reminder: reminder.Reminder{
					ID:       input.ReminderID,
					Schedule: reminder.Schedule{Recurrence: reminder.Once(), IsActive: input.IsActive},
				}}, nil
			},
		))

		body, err := json.Marshal(map[string]bool{"is_active": isActive})
		require.Nil(t, err)
		rr := serve(handler, "/reminders/3/active", string(body))

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, captured)
		assert.Equal(t, service.Input{ReminderID: 3, IsActive: isActive}, *captured)

		var res struct {
			Reminder struct {
				ID       int64 `json:"id"`
				IsActive bool  `json:"is_active"`
			} `json:"reminder"`
		}
		require.Nil(t, json.Unmarshal(rr.Body.Bytes(), &res))
		assert.Equal(t, int64(3), res.Reminder.ID)
		assert.Equal(t, isActive, res.Reminder.IsActive)
	}
}

func TestSetReminderActiveHandlerErrors(t *testing.T) {
	cases := []struct {
		id             string
		url            string
		body           string
		err            error
		expectedStatus int
	}{
		{id: "invalid-reminder-id", url: "/reminders/x/active", body: `{"is_active": true}`, expectedStatus: http.StatusBadRequest},
		{id: "malformed-json", url: "/reminders/1/active", body: `{"is_active": `, expectedStatus: http.StatusBadRequest},
		{id: "flag-missing", url: "/reminders/1/active", body: `{}`, expectedStatus: http.StatusBadRequest},
		{id: "flag-not-boolean", url: "/reminders/1/active", body: `{"is_active": "yes"}`, expectedStatus: http.StatusBadRequest},
		{id: "unauthenticated", url: "/reminders/1/active", body: `{"is_active": true}`, err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{id: "not-found", url: "/reminders/1/active", body: `{"is_active": true}`, err: reminder.ErrReminderDoesNotExist, expectedStatus: http.StatusNotFound},
		{id: "foreign", url: "/reminders/1/active", body: `{"is_active": false}`, err: reminder.ErrReminderPermission, expectedStatus: http.StatusForbidden},
		{id: "limit-exceeded", url: "/reminders/1/active", body: `{"is_active": true}`, err: reminder.ErrActiveReminderLimitExceeded, expectedStatus: http.StatusUnprocessableEntity},
		{id: "internal", url: "/reminders/1/active", body: `{"is_active": true}`, err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			handler := New(services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (result service.Result, err error) {
					return result, testcase.err
				},
			))
			rr := serve(handler, testcase.url, testcase.body)
			assert.Equal(t, testcase.expectedStatus, rr.Code)
		})
	}
}
