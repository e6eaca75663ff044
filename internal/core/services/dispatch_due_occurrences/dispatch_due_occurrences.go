package dispatchdueoccurrences

import (
	"context"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/services"
)

type Input struct{}

type Result struct {
	DueCount        int
	DispatchedCount int
}

type service struct {
	log                logging.Logger
	reminderRepository reminder.ReminderRepository
	claimer            reminder.OccurrenceClaimer
	publisher          reminder.OccurrencePublisher
	lookback           time.Duration
	now                func() time.Time
}

// New publishes occurrences that became due within lookback before now. Every
// occurrence is claimed first, so overlapping runs publish it once.
func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
	claimer reminder.OccurrenceClaimer,
	publisher reminder.OccurrencePublisher,
	lookback time.Duration,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if claimer == nil {
		panic(e.NewNilArgumentError("claimer"))
	}
	if publisher == nil {
		panic(e.NewNilArgumentError("publisher"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                log,
		reminderRepository: reminderRepository,
		claimer:            claimer,
		publisher:          publisher,
		lookback:           lookback,
		now:                now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	from := now.Add(-s.lookback)

	reminders, err := s.reminderRepository.Read(ctx, reminder.ReadOptions{
		IsActiveEquals:   c.NewOptional(true, true),
		AnchorAtNotAfter: c.NewOptional(now, true),
		OrderBy:          reminder.OrderByIDAsc,
	})
	if err != nil {
		logging.Error(ctx, s.log, err)
		return result, err
	}

	dispatchedIDs := make([]reminder.ID, 0)
	for _, rem := range reminders {
		for _, at := range rem.OccurrencesBetween(from, now) {
			result.DueCount++
			occurrence := reminder.NewOccurrence(rem, at)
			claimed, err := s.claimer.Claim(ctx, occurrence)
			if err != nil {
				logging.Error(ctx, s.log, err, logging.Entry("reminderID", rem.ID), logging.Entry("at", at))
				return result, err
			}
			if !claimed {
				continue
			}
			if err := s.publisher.PublishOccurrence(ctx, occurrence); err != nil {
				logging.Error(
					ctx,
					s.log,
					err,
					logging.Entry("reminderID", rem.ID),
					logging.Entry("at", at),
					logging.Entry("dispatchedIDs", dispatchedIDs),
				)
				return result, err
			}
			result.DispatchedCount++
			dispatchedIDs = append(dispatchedIDs, rem.ID)
		}
	}

	if len(dispatchedIDs) > 0 {
		s.log.Info(
			ctx,
			"Due occurrences successfully dispatched.",
			logging.Entry("dispatchedCount", result.DispatchedCount),
			logging.Entry("dispatchedIDs", dispatchedIDs),
		)
	}
	return result, nil
}
