package listoccurrences

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/reminder"
	service "medmate/internal/core/services/list_occurrences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubService struct {
	result service.Result
	err    error
	input  *service.Input
}

func (s *stubService) Run(ctx context.Context, input service.Input) (result service.Result, err error) {
	if s.err != nil {
		return result, s.err
	}
	s.input = &input
	return s.result, nil
}

func TestListOccurrencesHandlerParsesWindow(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.Nil(t, err)

	cases := []struct {
		id             string
		query          url.Values
		expectedStatus int
		expectedInput  *service.Input
	}{
		{
			id:             "explicit window",
			query:          url.Values{"from": {"2024-03-01T00:00:00Z"}, "to": {"2024-03-08T00:00:00+02:00"}},
			expectedStatus: http.StatusOK,
			expectedInput: &service.Input{
				From: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
				To:   time.Date(2024, 3, 7, 22, 0, 0, 0, time.UTC),
			},
		},
		{
			id:             "day in utc",
			query:          url.Values{"date": {"2024-03-10"}},
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{Day: c.Some(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))},
		},
		{
			id:             "day in zone",
			query:          url.Values{"date": {"2024-03-10"}, "time_zone": {"Asia/Tokyo"}},
			expectedStatus: http.StatusOK,
			expectedInput:  &service.Input{Day: c.Some(time.Date(2024, 3, 10, 0, 0, 0, 0, tokyo))},
		},
		{
			id:             "unknown zone",
			query:          url.Values{"date": {"2024-03-10"}, "time_zone": {"Mars/Base"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid date",
			query:          url.Values{"date": {"10.03.2024"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "missing to",
			query:          url.Values{"from": {"2024-03-01T00:00:00Z"}},
			expectedStatus: http.StatusBadRequest,
		},
		{
			id:             "invalid from",
			query:          url.Values{"from": {"yesterday"}, "to": {"2024-03-01T00:00:00Z"}},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			req, err := http.NewRequest("GET", "/reminders/occurrences?"+testcase.query.Encode(), nil)
			require.Nil(t, err)

			stub := &stubService{}
			rr := httptest.NewRecorder()
			New(stub).ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			if testcase.expectedInput == nil {
				assert.Nil(t, stub.input)
				return
			}
			require.NotNil(t, stub.input)
			assert.True(t, testcase.expectedInput.From.Equal(stub.input.From))
			assert.True(t, testcase.expectedInput.To.Equal(stub.input.To))
			assert.Equal(t, testcase.expectedInput.Day.IsPresent, stub.input.Day.IsPresent)
			assert.True(t, testcase.expectedInput.Day.Value.Equal(stub.input.Day.Value))
			assert.Equal(t,
				testcase.expectedInput.Day.Value.Location().String(),
				stub.input.Day.Value.Location().String(),
			)
		})
	}
}

func TestListOccurrencesHandlerRendersOccurrences(t *testing.T) {
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	stub := &stubService{result: service.Result{
		From: time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC),
		Occurrences: []service.Occurrence{
			{
				Occurrence:     reminder.Occurrence{ReminderID: 5, Medication: "Aspirin", At: at},
				IsAcknowledged: true,
			},
		},
	}}

	req, err := http.NewRequest("GET", "/reminders/occurrences?date=2024-03-10", nil)
	require.Nil(t, err)
	rr := httptest.NewRecorder()
	New(stub).ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Occurrences []struct {
			ReminderID     int64     `json:"reminder_id"`
			Medication     string    `json:"medication"`
			At             time.Time `json:"at"`
			IsAcknowledged bool      `json:"is_acknowledged"`
		} `json:"occurrences"`
	}
	require.Nil(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Occurrences, 1)
	assert.Equal(t, int64(5), body.Occurrences[0].ReminderID)
	assert.Equal(t, "Aspirin", body.Occurrences[0].Medication)
	assert.True(t, at.Equal(body.Occurrences[0].At))
	assert.True(t, body.Occurrences[0].IsAcknowledged)
}

func TestListOccurrencesHandlerRejectsLongWindow(t *testing.T) {
	req, err := http.NewRequest("GET", "/reminders/occurrences?date=2024-03-10", nil)
	require.Nil(t, err)
	rr := httptest.NewRecorder()
	New(&stubService{err: reminder.ErrInvalidOccurrenceWindow}).ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
