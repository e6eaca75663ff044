package reminder

import (
	"fmt"
	"strconv"
	"time"

	_ "time/tzdata"
)

const (
	ANCHOR_WALL_CLOCK_LAYOUT              = "2006-01-02T15:04"
	ANCHOR_WALL_CLOCK_LAYOUT_WITH_SECONDS = "2006-01-02T15:04:05"
)

const MAX_ZONE_OFFSET = 14 * 60 * 60

// ParseAnchor reads the anchor date-time of a schedule.
//
// Without timeZone the value must be RFC 3339 and its offset is kept as a
// fixed zone. With an IANA timeZone the value is a wall-clock time in it.
func ParseAnchor(value string, timeZone string) (time.Time, error) {
	if timeZone == "" {
		at, err := time.Parse(time.RFC3339, value)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidAnchor, value)
		}
		if _, offset := at.Zone(); offset > MAX_ZONE_OFFSET || offset < -MAX_ZONE_OFFSET {
			return time.Time{}, fmt.Errorf("%w: offset out of range: %q", ErrInvalidAnchor, value)
		}
		return captureOffset(at), nil
	}

	location, err := DecodeZone(timeZone)
	if err != nil {
		return time.Time{}, err
	}
	for _, layout := range []string{ANCHOR_WALL_CLOCK_LAYOUT, ANCHOR_WALL_CLOCK_LAYOUT_WITH_SECONDS} {
		if naive, err := time.Parse(layout, value); err == nil {
			return wallClock(
				naive.Year(), naive.Month(), naive.Day(),
				naive.Hour(), naive.Minute(), naive.Second(), 0,
				location,
			), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidAnchor, value)
}

// EncodeZone returns the name under which the zone of t is persisted.
func EncodeZone(t time.Time) string {
	name := t.Location().String()
	if name == "" || name == "Local" {
		_, offset := t.Zone()
		return formatOffset(offset)
	}
	return name
}

// DecodeZone is the inverse of EncodeZone.
func DecodeZone(name string) (*time.Location, error) {
	if name == "UTC" || name == "Z" {
		return time.UTC, nil
	}
	if name == "" || name == "Local" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimeZone, name)
	}
	if name[0] == '+' || name[0] == '-' {
		offset, ok := parseOffset(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTimeZone, name)
		}
		return time.FixedZone(formatOffset(offset), offset), nil
	}

	location, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimeZone, name)
	}
	return location, nil
}

// InZone attaches the persisted zone to an instant read from storage.
func InZone(at time.Time, zone string) (time.Time, error) {
	location, err := DecodeZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	return at.In(location), nil
}

func captureOffset(t time.Time) time.Time {
	_, offset := t.Zone()
	if offset == 0 {
		return t.UTC()
	}
	return t.In(time.FixedZone(formatOffset(offset), offset))
}

func formatOffset(offset int) string {
	sign := '+'
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	return fmt.Sprintf("%c%02d:%02d", sign, offset/3600, offset%3600/60)
}

func parseOffset(value string) (int, bool) {
	if len(value) != 6 || value[3] != ':' {
		return 0, false
	}
	hours, err := strconv.Atoi(value[1:3])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(value[4:6])
	if err != nil || minutes > 59 {
		return 0, false
	}
	offset := hours*3600 + minutes*60
	if offset > MAX_ZONE_OFFSET {
		return 0, false
	}
	if value[0] == '-' {
		offset = -offset
	}
	return offset, true
}
