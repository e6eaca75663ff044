package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"medmate/internal/core/domain/reminder"

	"github.com/emersion/go-ical"
	"github.com/golang-module/carbon/v2"
	"github.com/teambition/rrule-go"
)

const PRODUCT_ID = "-//MedMate//Medication reminders//EN"

const EMPTY_CALENDAR = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + PRODUCT_ID + "\r\nEND:VCALENDAR\r\n"

var rruleWeekdays = map[reminder.Weekday]rrule.Weekday{
	reminder.Monday:    rrule.MO,
	reminder.Tuesday:   rrule.TU,
	reminder.Wednesday: rrule.WE,
	reminder.Thursday:  rrule.TH,
	reminder.Friday:    rrule.FR,
	reminder.Saturday:  rrule.SA,
	reminder.Sunday:    rrule.SU,
}

// ICalExporter renders reminders as VEVENTs. Recurring reminders get an
// RRULE bounded by the horizon.
type ICalExporter struct {
	horizonDays uint
}

func NewICalExporter(horizonDays uint) *ICalExporter {
	if horizonDays == 0 {
		panic("calendar horizon must be positive")
	}
	return &ICalExporter{horizonDays: horizonDays}
}

func (x *ICalExporter) Export(w io.Writer, reminders []reminder.Reminder, now time.Time) error {
	if len(reminders) == 0 {
		_, err := io.WriteString(w, EMPTY_CALENDAR)
		return err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, PRODUCT_ID)

	until := x.horizon(now)
	for _, rem := range reminders {
		cal.Children = append(cal.Children, newEvent(rem, now, until).Component)
	}
	return ical.NewEncoder(w).Encode(cal)
}

func (x *ICalExporter) horizon(now time.Time) time.Time {
	return carbon.Time2Carbon(now).
		SetLocation(time.UTC).
		AddDays(int(x.horizonDays)).
		EndOfDay().
		Carbon2Time()
}

func newEvent(rem reminder.Reminder, now time.Time, until time.Time) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, fmt.Sprintf("reminder-%d@medmate", rem.ID))
	event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
	event.Props.SetText(ical.PropSummary, summary(rem))
	if rem.Note.IsPresent {
		event.Props.SetText(ical.PropDescription, rem.Note.Value)
	}
	event.Props.SetDateTime(ical.PropDateTimeStart, eventStart(rem.AnchorAt))
	if rule, ok := recurrenceRule(rem.Recurrence, until); ok {
		event.Props.SetRecurrenceRule(rule)
	}
	return event
}

func summary(rem reminder.Reminder) string {
	if strings.TrimSpace(rem.Medication) == "" {
		return "Medication reminder"
	}
	return rem.Medication
}

// eventStart keeps named zones as TZID and turns fixed offsets into UTC,
// which calendar clients cannot resolve by name.
func eventStart(anchorAt time.Time) time.Time {
	zone := reminder.EncodeZone(anchorAt)
	if zone == "UTC" || strings.HasPrefix(zone, "+") || strings.HasPrefix(zone, "-") {
		return anchorAt.UTC()
	}
	return anchorAt
}

func recurrenceRule(recurrence reminder.Recurrence, until time.Time) (*rrule.ROption, bool) {
	switch recurrence.Type() {
	case reminder.RecurrenceDaily:
		return &rrule.ROption{Freq: rrule.DAILY, Until: until.UTC()}, true
	case reminder.RecurrenceCustom:
		days := recurrence.Days()
		byWeekday := make([]rrule.Weekday, 0, len(days))
		for _, day := range days {
			byWeekday = append(byWeekday, rruleWeekdays[day])
		}
		return &rrule.ROption{Freq: rrule.WEEKLY, Byweekday: byWeekday, Until: until.UTC()}, true
	default:
		return nil, false
	}
}
