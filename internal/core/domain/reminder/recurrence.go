package reminder

import (
	"fmt"
	"strings"
	"time"
)

type RecurrenceType struct {
	v string
}

var (
	RecurrenceUnknown RecurrenceType = RecurrenceType{}
	RecurrenceOnce    RecurrenceType = RecurrenceType{v: "once"}
	RecurrenceDaily   RecurrenceType = RecurrenceType{v: "daily"}
	RecurrenceCustom  RecurrenceType = RecurrenceType{v: "custom"}
)

func (t RecurrenceType) String() string {
	return t.v
}

func ParseRecurrenceType(value string) (RecurrenceType, error) {
	switch value {
	case "once":
		return RecurrenceOnce, nil
	case "daily":
		return RecurrenceDaily, nil
	case "custom":
		return RecurrenceCustom, nil
	default:
		return RecurrenceUnknown, fmt.Errorf("%w: %q", ErrUnknownRecurrenceType, value)
	}
}

// RecurrenceInput is a recurrence as submitted by a user, not validated yet.
type RecurrenceInput struct {
	Type string
	Days []string
}

// Recurrence is a validated repetition rule. The zero value is not valid.
type Recurrence struct {
	t    RecurrenceType
	days WeekdaySet
}

func Once() Recurrence {
	return Recurrence{t: RecurrenceOnce}
}

func Daily() Recurrence {
	return Recurrence{t: RecurrenceDaily}
}

func Custom(days ...Weekday) (Recurrence, error) {
	tokens := make([]string, len(days))
	for ix, d := range days {
		tokens[ix] = d.String()
		if !d.IsValid() {
			tokens[ix] = fmt.Sprintf("#%d", d)
		}
	}
	return ValidateRecurrence(RecurrenceInput{Type: RecurrenceCustom.String(), Days: tokens})
}

// ValidateRecurrence checks a user supplied rule and returns it with the
// day set in canonical order.
func ValidateRecurrence(input RecurrenceInput) (r Recurrence, err error) {
	t, err := ParseRecurrenceType(input.Type)
	if err != nil {
		return r, err
	}
	if t != RecurrenceCustom {
		if len(input.Days) > 0 {
			return r, ErrUnexpectedDays
		}
		return Recurrence{t: t}, nil
	}

	if len(input.Days) == 0 {
		return r, ErrEmptyCustomDaySet
	}
	var days WeekdaySet
	for _, token := range input.Days {
		d, err := ParseWeekday(token)
		if err != nil {
			return r, err
		}
		if days.Has(d) {
			return r, fmt.Errorf("%w: %q", ErrDuplicateDay, token)
		}
		days = days.With(d)
	}
	return Recurrence{t: t, days: days}, nil
}

// ParseRecurrence decodes the value produced by Recurrence.String.
func ParseRecurrence(value string) (Recurrence, error) {
	rawType, rawDays, hasDays := strings.Cut(value, ":")
	input := RecurrenceInput{Type: rawType}
	if hasDays {
		input.Days = strings.Split(rawDays, ",")
	}
	return ValidateRecurrence(input)
}

func (r Recurrence) Type() RecurrenceType {
	return r.t
}

func (r Recurrence) DaySet() WeekdaySet {
	return r.days
}

func (r Recurrence) Days() []Weekday {
	return r.days.Days()
}

func (r Recurrence) IsZero() bool {
	return r.t == RecurrenceUnknown
}

func (r Recurrence) Input() RecurrenceInput {
	input := RecurrenceInput{Type: r.t.String()}
	if r.t == RecurrenceCustom {
		input.Days = r.days.Tokens()
	}
	return input
}

func (r Recurrence) Validate() error {
	_, err := ValidateRecurrence(r.Input())
	return err
}

// String encodes the rule as "once", "daily" or "custom:Mon,Thu".
func (r Recurrence) String() string {
	if r.t != RecurrenceCustom {
		return r.t.String()
	}
	return r.t.String() + ":" + strings.Join(r.days.Tokens(), ",")
}

func (r Recurrence) firesOn(d time.Weekday) bool {
	switch r.t {
	case RecurrenceDaily:
		return true
	case RecurrenceCustom:
		return r.days.Contains(d)
	default:
		return false
	}
}
