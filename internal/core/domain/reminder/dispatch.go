package reminder

import (
	"context"
	"io"
	"time"
)

// OccurrenceClaimer makes sure an occurrence is dispatched by one process only.
type OccurrenceClaimer interface {
	Claim(ctx context.Context, occurrence Occurrence) (bool, error)
}

type OccurrencePublisher interface {
	PublishOccurrence(ctx context.Context, occurrence Occurrence) error
}

// OccurrenceNotifier delivers a due occurrence to the user.
type OccurrenceNotifier interface {
	NotifyOccurrence(ctx context.Context, occurrence Occurrence) error
}

type CalendarExporter interface {
	Export(w io.Writer, reminders []Reminder, now time.Time) error
}
