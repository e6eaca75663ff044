package notifyoccurrence

import (
	"context"
	"errors"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/services"
)

type Input struct {
	Occurrence reminder.Occurrence
}

type Result struct {
	IsNotified bool
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
	notifier           reminder.OccurrenceNotifier
}

// New delivers a dispatched occurrence unless the reminder was deleted,
// deactivated or rescheduled after the dispatch.
func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
	notifier reminder.OccurrenceNotifier,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if notifier == nil {
		panic(e.NewNilArgumentError("notifier"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		notifier:           notifier,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	occurrence := input.Occurrence
	rem, err := s.reminderRepository.GetByID(ctx, occurrence.ReminderID)
	if errors.Is(err, reminder.ErrReminderDoesNotExist) {
		s.log.Info(ctx, "Reminder was deleted, skip notification.", logging.Entry("occurrence", occurrence))
		return result, nil
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("occurrence", occurrence))
		return result, err
	}
	if !rem.IsOccurrence(occurrence.At) {
		s.log.Info(ctx, "Occurrence is not actual anymore, skip notification.", logging.Entry("occurrence", occurrence))
		return result, nil
	}

	if err := s.notifier.NotifyOccurrence(ctx, reminder.NewOccurrence(rem, occurrence.At)); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("occurrence", occurrence))
		return result, err
	}

	s.log.Info(
		ctx,
		"Occurrence notification successfully sent.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("at", occurrence.At),
	)
	return Result{IsNotified: true}, nil
}
