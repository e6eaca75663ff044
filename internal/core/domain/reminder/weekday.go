package reminder

import (
	"fmt"
	"math/bits"
	"time"
)

// Weekday is numbered in canonical order, Monday first.
type Weekday uint8

const (
	WeekdayUnknown Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayTokens = [...]string{"", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func (d Weekday) String() string {
	if !d.IsValid() {
		return ""
	}
	return weekdayTokens[d]
}

func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

func ParseWeekday(token string) (Weekday, error) {
	for d := Monday; d <= Sunday; d++ {
		if weekdayTokens[d] == token {
			return d, nil
		}
	}
	return WeekdayUnknown, fmt.Errorf("%w: %q", ErrUnrecognizedWeekday, token)
}

func WeekdayOf(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sunday
	}
	return Weekday(d)
}

// WeekdaySet is an unordered set of weekdays. Equal sets are equal values.
type WeekdaySet uint8

func NewWeekdaySet(days ...Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

func (s WeekdaySet) With(d Weekday) WeekdaySet {
	if !d.IsValid() {
		return s
	}
	return s | 1<<d
}

func (s WeekdaySet) Has(d Weekday) bool {
	return d.IsValid() && s&(1<<d) != 0
}

func (s WeekdaySet) Contains(d time.Weekday) bool {
	return s.Has(WeekdayOf(d))
}

func (s WeekdaySet) Len() int {
	return bits.OnesCount8(uint8(s))
}

func (s WeekdaySet) IsEmpty() bool {
	return s == 0
}

// Days returns the members from Monday to Sunday.
func (s WeekdaySet) Days() []Weekday {
	days := make([]Weekday, 0, s.Len())
	for d := Monday; d <= Sunday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

func (s WeekdaySet) Tokens() []string {
	days := s.Days()
	tokens := make([]string, len(days))
	for ix, d := range days {
		tokens[ix] = d.String()
	}
	return tokens
}
