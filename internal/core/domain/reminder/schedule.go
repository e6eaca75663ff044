package reminder

import (
	"time"

	c "medmate/internal/core/domain/common"
)

const MAX_NOTE_LEN = 1024

// Schedule is the recurring part of a reminder. Its methods never modify the
// receiver.
type Schedule struct {
	AnchorAt   time.Time
	Recurrence Recurrence
	Note       c.Optional[string]
	IsActive   bool
}

type ScheduleParams struct {
	AnchorAt   time.Time
	Recurrence RecurrenceInput
	Note       c.Optional[string]
}

func NewSchedule(params ScheduleParams) (Schedule, error) {
	if params.AnchorAt.IsZero() {
		return Schedule{}, ErrInvalidAnchor
	}
	recurrence, err := ValidateRecurrence(params.Recurrence)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{
		AnchorAt:   params.AnchorAt,
		Recurrence: recurrence,
		Note:       params.Note,
		IsActive:   true,
	}, nil
}

type EditParams struct {
	DoAnchorAtUpdate bool
	AnchorAt         time.Time

	DoRecurrenceUpdate bool
	Recurrence         RecurrenceInput

	DoNoteUpdate bool
	Note         c.Optional[string]
}

// Edit returns a copy with the requested fields replaced. The merged result is
// validated as a whole.
func (s Schedule) Edit(params EditParams) (Schedule, error) {
	edited := s
	if params.DoAnchorAtUpdate {
		edited.AnchorAt = params.AnchorAt
	}
	if params.DoRecurrenceUpdate {
		recurrence, err := ValidateRecurrence(params.Recurrence)
		if err != nil {
			return Schedule{}, err
		}
		edited.Recurrence = recurrence
	}
	if params.DoNoteUpdate {
		edited.Note = params.Note
	}
	if err := edited.Validate(); err != nil {
		return Schedule{}, err
	}
	return edited, nil
}

func (s Schedule) SetActive(active bool) Schedule {
	s.IsActive = active
	return s
}

// IsSingleFired reports whether firedAt is the only occurrence of a one-shot
// schedule. Callers deactivate such schedules once the occurrence is handled.
func (s Schedule) IsSingleFired(firedAt time.Time) bool {
	return s.Recurrence.Type() == RecurrenceOnce && s.AnchorAt.Equal(firedAt)
}

func (s Schedule) Validate() error {
	if s.AnchorAt.IsZero() {
		return ErrInvalidAnchor
	}
	return s.Recurrence.Validate()
}
