package acknowledgeoccurrence

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/acknowledge_occurrence"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(handler http.Handler, url string, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(http.MethodPost, "/reminders/{reminderID}/acknowledge", handler)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, url, strings.NewReader(body)))
	return rr
}

func TestAcknowledgeOccurrenceHandler(t *testing.T) {
	firedAt := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	var captured service.Input
	handler := New(services.ServiceFunc[service.Input, service.Result](
		func(ctx context.Context, input service.Input) (service.Result, error) {
			captured = input
			return service.Result{
				Reminder: reminder.Reminder{
					ID:         input.ReminderID,
					CreatedBy:  1,
					Medication: "Aspirin",
					Schedule:   reminder.Schedule{AnchorAt: firedAt, Recurrence: reminder.Daily(), IsActive: true},
				},
				Acknowledgment: reminder.Acknowledgment{
					ID:             5,
					ReminderID:     input.ReminderID,
					OccurrenceAt:   input.FiredAt,
					AcknowledgedAt: firedAt.Add(time.Minute),
				},
			}, nil
		},
	))

	rr := serve(handler, "/reminders/12/acknowledge", `{"fired_at": "2024-03-04T09:00:00+01:00"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, reminder.ID(12), captured.ReminderID)
	assert.True(t, firedAt.Equal(captured.FiredAt))

	var res struct {
		Reminder struct {
			ID         int64  `json:"id"`
			Medication string `json:"medication"`
		} `json:"reminder"`
		Acknowledgment struct {
			ID           int64     `json:"id"`
			ReminderID   int64     `json:"reminder_id"`
			OccurrenceAt time.Time `json:"occurrence_at"`
		} `json:"acknowledgment"`
	}
	require.Nil(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, int64(12), res.Reminder.ID)
	assert.Equal(t, "Aspirin", res.Reminder.Medication)
	assert.Equal(t, int64(5), res.Acknowledgment.ID)
	assert.Equal(t, int64(12), res.Acknowledgment.ReminderID)
	assert.True(t, firedAt.Equal(res.Acknowledgment.OccurrenceAt))
}

func TestAcknowledgeOccurrenceHandlerErrors(t *testing.T) {
	const BODY = `{"fired_at": "2024-03-04T08:00:00Z"}`

	cases := []struct {
		id             string
		url            string
		body           string
		err            error
		expectedStatus int
		expectedCalled bool
	}{
		{id: "invalid-reminder-id", url: "/reminders/abc/acknowledge", body: BODY, expectedStatus: http.StatusBadRequest},
		{id: "malformed-json", url: "/reminders/1/acknowledge", body: `{"fired_at": `, expectedStatus: http.StatusBadRequest},
		{id: "fired-at-not-a-timestamp", url: "/reminders/1/acknowledge", body: `{"fired_at": "yesterday"}`, expectedStatus: http.StatusBadRequest},
		{id: "fired-at-without-offset", url: "/reminders/1/acknowledge", body: `{"fired_at": "2024-03-04T08:00:00"}`, expectedStatus: http.StatusBadRequest},
		{id: "fired-at-missing", url: "/reminders/1/acknowledge", body: `{}`, expectedStatus: http.StatusBadRequest},
		{id: "unauthenticated", url: "/reminders/1/acknowledge", body: BODY, err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized, expectedCalled: true},
		{id: "not-found", url: "/reminders/1/acknowledge", body: BODY, err: reminder.ErrReminderDoesNotExist, expectedStatus: http.StatusNotFound, expectedCalled: true},
		{id: "foreign", url: "/reminders/1/acknowledge", body: BODY, err: reminder.ErrReminderPermission, expectedStatus: http.StatusForbidden, expectedCalled: true},
		{id: "already-acknowledged", url: "/reminders/1/acknowledge", body: BODY, err: reminder.ErrAlreadyAcknowledged, expectedStatus: http.StatusConflict, expectedCalled: true},
		{id: "not-an-occurrence", url: "/reminders/1/acknowledge", body: BODY, err: reminder.ErrNotAnOccurrence, expectedStatus: http.StatusUnprocessableEntity, expectedCalled: true},
		{id: "internal", url: "/reminders/1/acknowledge", body: BODY, err: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedCalled: true},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			called := false
			handler := New(services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (result service.Result, err error) {
					called = true
					return result, testcase.err
				},
			))

			rr := serve(handler, testcase.url, testcase.body)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedCalled, called)
		})
	}
}
