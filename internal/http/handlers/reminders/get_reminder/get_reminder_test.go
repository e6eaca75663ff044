package getreminder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/get_reminder"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(handler http.Handler, url string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(http.MethodGet, "/reminders/{reminderID}", handler)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, url, nil))
	return rr
}

func TestGetReminderHandler(t *testing.T) {
	anchor := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	var captured service.Input
	handler := New(services.ServiceFunc[service.Input, service.Result](
		func(ctx context.Context, input service.Input) (service.Result, error) {
			captured = input
			return service.Result{Reminder: reminder.Reminder{
				ID:             input.ReminderID,
				CreatedBy:      1,
				FamilyMemberID: c.Some(family.ID(4)),
				PrescriptionID: c.Some(prescription.ID(6)),
				Medication:     "Aspirin",
				Schedule: reminder.Schedule{
					AnchorAt:   anchor,
					Recurrence: reminder.Daily(),
					Note:       c.Some("after lunch"),
					IsActive:   true,
				},
			}}, nil
		},
	))

	rr := serve(handler, "/reminders/21")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, reminder.ID(21), captured.ReminderID)

	var res struct {
		Reminder struct {
			ID             int64  `json:"id"`
			FamilyMemberID *int64 `json:"family_member_id"`
			PrescriptionID *int64 `json:"prescription_id"`
			RepeatType     string `json:"repeat_type"`
			Note           string `json:"note"`
			TimeZone       string `json:"time_zone"`
		} `json:"reminder"`
	}
	require.Nil(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, int64(21), res.Reminder.ID)
	require.NotNil(t, res.Reminder.FamilyMemberID)
	assert.Equal(t, int64(4), *res.Reminder.FamilyMemberID)
	require.NotNil(t, res.Reminder.PrescriptionID)
	assert.Equal(t, int64(6), *res.Reminder.PrescriptionID)
	assert.Equal(t, "daily", res.Reminder.RepeatType)
	assert.Equal(t, "after lunch", res.Reminder.Note)
	assert.Equal(t, "UTC", res.Reminder.TimeZone)
}

func TestGetReminderHandlerErrors(t *testing.T) {
	cases := []struct {
		id             string
		url            string
		err            error
		expectedStatus int
	}{
		{id: "invalid-reminder-id", url: "/reminders/first", expectedStatus: http.StatusBadRequest},
		{id: "unauthenticated", url: "/reminders/1", err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{id: "not-found", url: "/reminders/1", err: reminder.ErrReminderDoesNotExist, expectedStatus: http.StatusNotFound},
		{id: "foreign", url: "/reminders/1", err: reminder.ErrReminderPermission, expectedStatus: http.StatusForbidden},
		{id: "internal", url: "/reminders/1", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			handler := New(services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (result service.Result, err error) {
					return result, testcase.err
				},
			))
			rr := serve(handler, testcase.url)
			assert.Equal(t, testcase.expectedStatus, rr.Code)
		})
	}
}
