package response

import (
	"time"

	"medmate/internal/core/domain/reminder"
)

type Occurrence struct {
	ReminderID     int64     `json:"reminder_id"`
	FamilyMemberID *int64    `json:"family_member_id"`
	Medication     string    `json:"medication"`
	Note           *string   `json:"note"`
	At             time.Time `json:"at"`
	IsAcknowledged bool      `json:"is_acknowledged"`
}

func (o *Occurrence) FromDomainType(do reminder.Occurrence, isAcknowledged bool) {
	o.ReminderID = int64(do.ReminderID)
	if do.FamilyMemberID.IsPresent {
		memberID := int64(do.FamilyMemberID.Value)
		o.FamilyMemberID = &memberID
	}
	o.Medication = do.Medication
	if do.Note.IsPresent {
		note := do.Note.Value
		o.Note = &note
	}
	o.At = do.At
	o.IsAcknowledged = isAcknowledged
}
