package occurrencenotifier

import (
	"context"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/reminder"
)

type namedNotifier struct {
	name     string
	notifier reminder.OccurrenceNotifier
}

// Notifier fans an occurrence out to every delivery channel. It fails only
// when no channel accepted the occurrence.
type Notifier struct {
	log       logging.Logger
	notifiers []namedNotifier
}

func New(log logging.Logger) *Notifier {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &Notifier{log: log}
}

func (n *Notifier) With(name string, notifier reminder.OccurrenceNotifier) *Notifier {
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	n.notifiers = append(n.notifiers, namedNotifier{name: name, notifier: notifier})
	return n
}

func (n *Notifier) NotifyOccurrence(ctx context.Context, occurrence reminder.Occurrence) error {
	var lastErr error
	delivered := 0
	for _, channel := range n.notifiers {
		err := channel.notifier.NotifyOccurrence(ctx, occurrence)
		if err != nil {
			logging.Error(
				ctx,
				n.log,
				err,
				logging.Entry("channel", channel.name),
				logging.Entry("reminderID", occurrence.ReminderID),
				logging.Entry("at", occurrence.At),
			)
			lastErr = err
			continue
		}
		delivered++
		n.log.Debug(
			ctx,
			"Occurrence has been delivered to channel.",
			logging.Entry("channel", channel.name),
			logging.Entry("reminderID", occurrence.ReminderID),
		)
	}
	if delivered == 0 && lastErr != nil {
		return lastErr
	}
	return nil
}
