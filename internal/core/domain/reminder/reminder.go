package reminder

import (
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/user"
)

type ID int64

const MAX_MEDICATION_LEN = 256

type Reminder struct {
	ID             ID
	CreatedBy      user.ID
	FamilyMemberID c.Optional[family.ID]
	PrescriptionID c.Optional[prescription.ID]
	Medication     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Schedule
}

func (r *Reminder) Validate() error {
	if len(r.Medication) > MAX_MEDICATION_LEN {
		return e.NewInvalidStateErrorf("medication must not be longer than %d characters", MAX_MEDICATION_LEN)
	}
	if r.Note.IsPresent && len(r.Note.Value) > MAX_NOTE_LEN {
		return e.NewInvalidStateErrorf("note must not be longer than %d characters", MAX_NOTE_LEN)
	}
	return r.Schedule.Validate()
}

func (r *Reminder) IsOwnedBy(userID user.ID) bool {
	return r.CreatedBy == userID
}

type Acknowledgment struct {
	ID             int64
	ReminderID     ID
	OccurrenceAt   time.Time
	AcknowledgedAt time.Time
}

// Occurrence is a single firing of a reminder.
type Occurrence struct {
	ReminderID     ID
	CreatedBy      user.ID
	FamilyMemberID c.Optional[family.ID]
	Medication     string
	Note           c.Optional[string]
	At             time.Time
}

func NewOccurrence(r Reminder, at time.Time) Occurrence {
	return Occurrence{
		ReminderID:     r.ID,
		CreatedBy:      r.CreatedBy,
		FamilyMemberID: r.FamilyMemberID,
		Medication:     r.Medication,
		Note:           r.Note,
		At:             at,
	}
}
