package reminder

import "time"

const NEXT_OCCURRENCE_HORIZON = 7 * 24 * time.Hour

// OccurrencesBetween lists the moments the schedule fires within
// [windowStart, windowEnd] in ascending order.
//
// Recurring schedules fire on calendar days of the anchor's location at the
// anchor's wall-clock time, so the UTC instant moves across DST changes.
func (s Schedule) OccurrencesBetween(windowStart, windowEnd time.Time) []time.Time {
	occurrences := make([]time.Time, 0)
	if !s.IsActive || windowStart.After(windowEnd) || s.AnchorAt.After(windowEnd) {
		return occurrences
	}

	anchor := s.AnchorAt
	if s.Recurrence.Type() == RecurrenceOnce {
		if !anchor.Before(windowStart) {
			occurrences = append(occurrences, anchor)
		}
		return occurrences
	}

	location := anchor.Location()
	day := dateOf(anchor, location)
	if first := dateOf(windowStart, location); first.After(day) {
		day = first
	}
	last := dateOf(windowEnd, location)

	for !day.After(last) {
		if s.Recurrence.firesOn(day.Weekday()) {
			at := wallClock(
				day.Year(), day.Month(), day.Day(),
				anchor.Hour(), anchor.Minute(), anchor.Second(), anchor.Nanosecond(),
				location,
			)
			if !at.Before(windowStart) && !at.After(windowEnd) {
				occurrences = append(occurrences, at)
			}
		}
		day = time.Date(day.Year(), day.Month(), day.Day()+1, 12, 0, 0, 0, location)
	}
	return occurrences
}

// NextOccurrence returns the first occurrence at or after from.
func (s Schedule) NextOccurrence(from time.Time) (time.Time, bool) {
	occurrences := s.OccurrencesBetween(from, from.Add(NEXT_OCCURRENCE_HORIZON))
	if len(occurrences) == 0 {
		return time.Time{}, false
	}
	return occurrences[0], true
}

// IsOccurrence reports whether the schedule fires exactly at t.
func (s Schedule) IsOccurrence(t time.Time) bool {
	for _, at := range s.OccurrencesBetween(t, t) {
		if at.Equal(t) {
			return true
		}
	}
	return false
}

// wallClock is time.Date except for wall-clock times skipped by a DST
// transition: those resolve forward with the offset in effect before the
// transition, so 02:30 on a spring-forward night becomes 03:30.
func wallClock(year int, month time.Month, day, hour, min, sec, nsec int, location *time.Location) time.Time {
	at := time.Date(year, month, day, hour, min, sec, nsec, location)
	wanted := time.Date(year, month, day, hour, min, sec, nsec, time.UTC)
	got := time.Date(at.Year(), at.Month(), at.Day(), at.Hour(), at.Minute(), at.Second(), at.Nanosecond(), time.UTC)
	if gap := wanted.Sub(got); gap > 0 {
		return at.Add(gap)
	}
	return at
}

// dateOf returns noon of the calendar day of t in location.
func dateOf(t time.Time, location *time.Location) time.Time {
	t = t.In(location)
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, location)
}
