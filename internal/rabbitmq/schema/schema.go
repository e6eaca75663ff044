package schema

import (
	"encoding/json"
	"time"

	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
)

// Occurrence is the message published for every due occurrence. Consumers
// reload the reminder, so only identifiers travel.
type Occurrence struct {
	ReminderID int64     `json:"reminder_id"`
	UserID     int64     `json:"user_id"`
	At         time.Time `json:"at"`
}

func NewOccurrence(occurrence reminder.Occurrence) Occurrence {
	return Occurrence{
		ReminderID: int64(occurrence.ReminderID),
		UserID:     int64(occurrence.CreatedBy),
		At:         occurrence.At.UTC(),
	}
}

func (o *Occurrence) Marshal() ([]byte, error) {
	return json.Marshal(o)
}

func (o *Occurrence) Unmarshal(data []byte) error {
	return json.Unmarshal(data, o)
}

func (o *Occurrence) ToDomain() reminder.Occurrence {
	return reminder.Occurrence{
		ReminderID: reminder.ID(o.ReminderID),
		CreatedBy:  user.ID(o.UserID),
		At:         o.At,
	}
}
