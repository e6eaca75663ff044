package occurrencenotifier

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/reminder"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var OCCURRENCE = reminder.Occurrence{
	ReminderID:     3,
	CreatedBy:      42,
	FamilyMemberID: c.Some(family.ID(7)),
	Medication:     "Aspirin",
	At:             time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC),
}

type failingNotifier struct {
	calls int
}

func (n *failingNotifier) NotifyOccurrence(ctx context.Context, occurrence reminder.Occurrence) error {
	n.calls++
	return errors.New("delivery failed")
}

type testSuite struct {
	suite.Suite
	log *logging.FakeLogger
}

func (s *testSuite) SetupTest() {
	s.log = logging.NewFakeLogger()
}

func TestNotifier(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestDeliversToEveryChannel() {
	first := reminder.NewFakeOccurrenceNotifier()
	second := reminder.NewFakeOccurrenceNotifier()
	notifier := New(s.log).With("first", first).With("second", second)

	s.Nil(notifier.NotifyOccurrence(context.Background(), OCCURRENCE))
	s.Equal([]reminder.Occurrence{OCCURRENCE}, first.Notified)
	s.Equal([]reminder.Occurrence{OCCURRENCE}, second.Notified)
}

func (s *testSuite) TestPartialFailureIsLogged() {
	failing := &failingNotifier{}
	working := reminder.NewFakeOccurrenceNotifier()
	notifier := New(s.log).With("failing", failing).With("working", working)

	s.Nil(notifier.NotifyOccurrence(context.Background(), OCCURRENCE))
	s.Equal(1, failing.calls)
	s.Len(working.Notified, 1)
	s.Equal(1, s.log.CountLevel(logging.ERROR))
}

func (s *testSuite) TestTotalFailure() {
	notifier := New(s.log).With("failing", &failingNotifier{})
	s.EqualError(notifier.NotifyOccurrence(context.Background(), OCCURRENCE), "delivery failed")
}

func TestOccurrenceEvent(t *testing.T) {
	assert := require.New(t)
	occurrence := OCCURRENCE
	occurrence.Note = c.Some("with water")

	data, err := json.Marshal(newOccurrenceEvent(occurrence))
	assert.Nil(err)
	assert.JSONEq(
		`{
			"reminder_id": 3,
			"family_member_id": 7,
			"medication": "Aspirin",
			"note": "with water",
			"occurrence_at": "2024-03-04T08:00:00Z"
		}`,
		string(data),
	)
	assert.Equal("42", StreamID(occurrence.CreatedBy))
}
