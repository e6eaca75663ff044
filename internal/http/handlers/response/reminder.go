package response

import (
	"time"

	"medmate/internal/core/domain/reminder"
)

// Reminder keeps anchor_at in the captured zone, so the offset in the
// rendered value matches time_zone.
type Reminder struct {
	ID             int64     `json:"id"`
	CreatedBy      int64     `json:"created_by"`
	FamilyMemberID *int64    `json:"family_member_id"`
	PrescriptionID *int64    `json:"prescription_id"`
	Medication     string    `json:"medication"`
	AnchorAt       time.Time `json:"anchor_at"`
	TimeZone       string    `json:"time_zone"`
	RepeatType     string    `json:"repeat_type"`
	RepeatDays     []string  `json:"repeat_days"`
	Note           *string   `json:"note"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (r *Reminder) FromDomainType(dr reminder.Reminder) {
	r.ID = int64(dr.ID)
	r.CreatedBy = int64(dr.CreatedBy)
	if dr.FamilyMemberID.IsPresent {
		memberID := int64(dr.FamilyMemberID.Value)
		r.FamilyMemberID = &memberID
	}
	if dr.PrescriptionID.IsPresent {
		prescriptionID := int64(dr.PrescriptionID.Value)
		r.PrescriptionID = &prescriptionID
	}
	r.Medication = dr.Medication
	r.AnchorAt = dr.AnchorAt
	r.TimeZone = reminder.EncodeZone(dr.AnchorAt)
	r.RepeatType = dr.Recurrence.Type().String()
	r.RepeatDays = dr.Recurrence.DaySet().Tokens()
	if dr.Note.IsPresent {
		note := dr.Note.Value
		r.Note = &note
	}
	r.IsActive = dr.IsActive
	r.CreatedAt = dr.CreatedAt
	r.UpdatedAt = dr.UpdatedAt
}

func RemindersFromDomain(reminders []reminder.Reminder) []Reminder {
	result := make([]Reminder, 0, len(reminders))
	for _, dr := range reminders {
		r := Reminder{}
		r.FromDomainType(dr)
		result = append(result, r)
	}
	return result
}

type Acknowledgment struct {
	ID             int64     `json:"id"`
	ReminderID     int64     `json:"reminder_id"`
	OccurrenceAt   time.Time `json:"occurrence_at"`
	AcknowledgedAt time.Time `json:"acknowledged_at"`
}

func (a *Acknowledgment) FromDomainType(da reminder.Acknowledgment) {
	a.ID = da.ID
	a.ReminderID = int64(da.ReminderID)
	a.OccurrenceAt = da.OccurrenceAt
	a.AcknowledgedAt = da.AcknowledgedAt
}
