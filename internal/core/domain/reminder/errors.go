package reminder

import (
	"errors"
	"fmt"
)

// ErrInvalidRecurrence is wrapped by every recurrence validation error.
var ErrInvalidRecurrence = errors.New("invalid recurrence")

var (
	ErrEmptyCustomDaySet     = fmt.Errorf("%w: custom recurrence requires at least one day", ErrInvalidRecurrence)
	ErrDuplicateDay          = fmt.Errorf("%w: duplicate day", ErrInvalidRecurrence)
	ErrUnrecognizedWeekday   = fmt.Errorf("%w: unrecognized weekday", ErrInvalidRecurrence)
	ErrUnknownRecurrenceType = fmt.Errorf("%w: unknown recurrence type", ErrInvalidRecurrence)
	ErrUnexpectedDays        = fmt.Errorf("%w: days are allowed only for custom recurrence", ErrInvalidRecurrence)
)

var (
	ErrInvalidAnchor   = errors.New("invalid anchor date-time")
	ErrUnknownTimeZone = errors.New("unknown time zone")
)

var (
	ErrReminderDoesNotExist        = errors.New("reminder does not exist")
	ErrReminderPermission          = errors.New("reminder belongs to another user")
	ErrActiveReminderLimitExceeded = errors.New("active reminder limit exceeded")
	ErrNotAnOccurrence             = errors.New("reminder does not fire at the given time")
	ErrAlreadyAcknowledged         = errors.New("occurrence is already acknowledged")
	ErrInvalidOccurrenceWindow     = errors.New("invalid occurrence window")
	ErrPrescriptionMismatch        = errors.New("prescription is issued for another family member")
)
