package occurrencenotifier

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"

	"github.com/r3labs/sse/v2"
)

const SSE_EVENT_NAME = "occurrence"

// StreamID is the SSE stream a user subscribes to.
func StreamID(userID user.ID) string {
	return strconv.FormatInt(int64(userID), 10)
}

type SSE struct {
	sseServer *sse.Server
}

func NewSSE(sseServer *sse.Server) *SSE {
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	return &SSE{sseServer: sseServer}
}

func (n *SSE) NotifyOccurrence(ctx context.Context, occurrence reminder.Occurrence) error {
	data, err := json.Marshal(newOccurrenceEvent(occurrence))
	if err != nil {
		return err
	}
	n.sseServer.Publish(
		StreamID(occurrence.CreatedBy),
		&sse.Event{Event: []byte(SSE_EVENT_NAME), Data: data},
	)
	return nil
}

type occurrenceEvent struct {
	ReminderID     int64     `json:"reminder_id"`
	FamilyMemberID *int64    `json:"family_member_id"`
	Medication     string    `json:"medication"`
	Note           *string   `json:"note"`
	OccurrenceAt   time.Time `json:"occurrence_at"`
}

func newOccurrenceEvent(occurrence reminder.Occurrence) occurrenceEvent {
	event := occurrenceEvent{
		ReminderID:   int64(occurrence.ReminderID),
		Medication:   occurrence.Medication,
		OccurrenceAt: occurrence.At,
	}
	if occurrence.FamilyMemberID.IsPresent {
		id := int64(occurrence.FamilyMemberID.Value)
		event.FamilyMemberID = &id
	}
	if occurrence.Note.IsPresent {
		note := occurrence.Note.Value
		event.Note = &note
	}
	return event
}
