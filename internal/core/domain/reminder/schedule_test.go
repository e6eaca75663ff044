package reminder

import (
	"testing"
	"time"

	c "medmate/internal/core/domain/common"

	"github.com/stretchr/testify/assert"
)

func newTestSchedule(t *testing.T, anchor time.Time, input RecurrenceInput) Schedule {
	t.Helper()
	s, err := NewSchedule(ScheduleParams{AnchorAt: anchor, Recurrence: input})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestNewSchedule(t *testing.T) {
	anchor := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	s, err := NewSchedule(ScheduleParams{
		AnchorAt:   anchor,
		Recurrence: RecurrenceInput{Type: "custom", Days: []string{"Thu", "Mon"}},
		Note:       c.NewOptional("after breakfast", true),
	})
	assert.Nil(t, err)
	assert.True(t, s.IsActive)
	assert.Equal(t, "custom:Mon,Thu", s.Recurrence.String())
	assert.Equal(t, "after breakfast", s.Note.Value)
	assert.True(t, s.AnchorAt.Equal(anchor))
}

func TestNewScheduleErrors(t *testing.T) {
	anchor := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)

	_, err := NewSchedule(ScheduleParams{AnchorAt: anchor, Recurrence: RecurrenceInput{Type: "custom"}})
	assert.ErrorIs(t, err, ErrEmptyCustomDaySet)

	_, err = NewSchedule(ScheduleParams{AnchorAt: anchor, Recurrence: RecurrenceInput{Type: "yearly"}})
	assert.ErrorIs(t, err, ErrUnknownRecurrenceType)

	_, err = NewSchedule(ScheduleParams{Recurrence: RecurrenceInput{Type: "once"}})
	assert.ErrorIs(t, err, ErrInvalidAnchor)
}

func TestScheduleEdit(t *testing.T) {
	anchor := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	original := newTestSchedule(t, anchor, RecurrenceInput{Type: "daily"})

	edited, err := original.Edit(EditParams{
		DoRecurrenceUpdate: true,
		Recurrence:         RecurrenceInput{Type: "custom", Days: []string{"Fri"}},
		DoNoteUpdate:       true,
		Note:               c.NewOptional("with water", true),
	})
	assert.Nil(t, err)
	assert.Equal(t, "custom:Fri", edited.Recurrence.String())
	assert.Equal(t, "with water", edited.Note.Value)
	assert.True(t, edited.AnchorAt.Equal(anchor))

	assert.Equal(t, "daily", original.Recurrence.String())
	assert.False(t, original.Note.IsPresent)
}

func TestScheduleEditFailureLeavesOriginal(t *testing.T) {
	anchor := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	original := newTestSchedule(t, anchor, RecurrenceInput{Type: "custom", Days: []string{"Mon"}})
	snapshot := original

	edited, err := original.Edit(EditParams{
		DoAnchorAtUpdate:   true,
		AnchorAt:           anchor.Add(time.Hour),
		DoRecurrenceUpdate: true,
		Recurrence:         RecurrenceInput{Type: "custom", Days: []string{}},
	})
	assert.ErrorIs(t, err, ErrEmptyCustomDaySet)
	assert.Equal(t, Schedule{}, edited)
	assert.Equal(t, snapshot, original)
}

func TestScheduleEditClearsNote(t *testing.T) {
	anchor := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	s, err := NewSchedule(ScheduleParams{
		AnchorAt:   anchor,
		Recurrence: RecurrenceInput{Type: "once"},
		Note:       c.NewOptional("note", true),
	})
	assert.Nil(t, err)

	edited, err := s.Edit(EditParams{DoNoteUpdate: true})
	assert.Nil(t, err)
	assert.False(t, edited.Note.IsPresent)
}

func TestScheduleSetActive(t *testing.T) {
	anchor := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)
	s := newTestSchedule(t, anchor, RecurrenceInput{Type: "daily"})

	inactive := s.SetActive(false)
	assert.False(t, inactive.IsActive)
	assert.True(t, s.IsActive)
	assert.Empty(t, inactive.OccurrencesBetween(anchor, anchor.AddDate(0, 0, 10)))

	reactivated := inactive.SetActive(true)
	assert.Equal(t, s, reactivated)
	assert.Len(t, reactivated.OccurrencesBetween(anchor, anchor.AddDate(0, 0, 10)), 11)
}

func TestScheduleIsSingleFired(t *testing.T) {
	anchor := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)

	once := newTestSchedule(t, anchor, RecurrenceInput{Type: "once"})
	assert.True(t, once.IsSingleFired(anchor))
	assert.True(t, once.IsSingleFired(anchor.In(time.FixedZone("+03:00", 3*3600))))
	assert.False(t, once.IsSingleFired(anchor.Add(time.Minute)))

	daily := newTestSchedule(t, anchor, RecurrenceInput{Type: "daily"})
	assert.False(t, daily.IsSingleFired(anchor))
}
