package listoccurrences

import (
	"context"
	"sort"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	"medmate/internal/core/services/auth"

	"github.com/golang-module/carbon/v2"
)

const MAX_WINDOW = 62 * 24 * time.Hour

type Input struct {
	UserID user.ID
	From   time.Time
	To     time.Time
	// Day replaces From and To with the calendar day of Day in its location.
	Day c.Optional[time.Time]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Occurrence struct {
	reminder.Occurrence
	IsAcknowledged bool
}

type Result struct {
	From        time.Time
	To          time.Time
	Occurrences []Occurrence
}

type service struct {
	log                      logging.Logger
	reminderRepository       reminder.ReminderRepository
	acknowledgmentRepository reminder.AcknowledgmentRepository
}

func New(
	log logging.Logger,
	reminderRepository reminder.ReminderRepository,
	acknowledgmentRepository reminder.AcknowledgmentRepository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if reminderRepository == nil {
		panic(e.NewNilArgumentError("reminderRepository"))
	}
	if acknowledgmentRepository == nil {
		panic(e.NewNilArgumentError("acknowledgmentRepository"))
	}
	return &service{
		log:                      log,
		reminderRepository:       reminderRepository,
		acknowledgmentRepository: acknowledgmentRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	from, to := input.From, input.To
	if input.Day.IsPresent {
		from, to = dayWindow(input.Day.Value)
	}
	if to.Before(from) || to.Sub(from) > MAX_WINDOW {
		return result, reminder.ErrInvalidOccurrenceWindow
	}

	reminders, err := s.reminderRepository.Read(ctx, reminder.ReadOptions{
		CreatedByEquals:  c.NewOptional(input.UserID, true),
		IsActiveEquals:   c.NewOptional(true, true),
		AnchorAtNotAfter: c.NewOptional(to, true),
		OrderBy:          reminder.OrderByIDAsc,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	occurrences := make([]Occurrence, 0)
	reminderIDs := make([]reminder.ID, 0, len(reminders))
	for _, rem := range reminders {
		reminderIDs = append(reminderIDs, rem.ID)
		for _, at := range rem.OccurrencesBetween(from, to) {
			occurrences = append(occurrences, Occurrence{Occurrence: reminder.NewOccurrence(rem, at)})
		}
	}
	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].At.Before(occurrences[j].At)
	})

	if len(occurrences) > 0 {
		if err := s.markAcknowledged(ctx, occurrences, reminderIDs, from, to); err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
			return result, err
		}
	}

	s.log.Info(
		ctx,
		"Occurrences successfully listed.",
		logging.Entry("userID", input.UserID),
		logging.Entry("from", from),
		logging.Entry("to", to),
		logging.Entry("count", len(occurrences)),
	)
	return Result{From: from, To: to, Occurrences: occurrences}, nil
}

func (s *service) markAcknowledged(
	ctx context.Context,
	occurrences []Occurrence,
	reminderIDs []reminder.ID,
	from time.Time,
	to time.Time,
) error {
	acknowledgments, err := s.acknowledgmentRepository.Read(ctx, reminder.AcknowledgmentReadOptions{
		ReminderIDIn:     reminderIDs,
		OccurrenceAtFrom: from,
		OccurrenceAtTo:   to,
	})
	if err != nil {
		return err
	}
	type key struct {
		reminderID reminder.ID
		at         int64
	}
	acknowledged := make(map[key]struct{}, len(acknowledgments))
	for _, a := range acknowledgments {
		acknowledged[key{a.ReminderID, a.OccurrenceAt.UnixNano()}] = struct{}{}
	}
	for ix := range occurrences {
		_, ok := acknowledged[key{occurrences[ix].ReminderID, occurrences[ix].At.UnixNano()}]
		occurrences[ix].IsAcknowledged = ok
	}
	return nil
}

func dayWindow(day time.Time) (time.Time, time.Time) {
	d := carbon.Time2Carbon(day).SetLocation(day.Location())
	return d.StartOfDay().Carbon2Time(), d.EndOfDay().Carbon2Time()
}
