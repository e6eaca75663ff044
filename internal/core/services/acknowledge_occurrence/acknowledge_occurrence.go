package acknowledgeoccurrence

import (
	"context"
	"errors"
	"time"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/reminder"
	uow "medmate/internal/core/domain/unit_of_work"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	"medmate/internal/core/services/auth"
)

type Input struct {
	UserID     user.ID
	ReminderID reminder.ID
	FiredAt    time.Time
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Reminder       reminder.Reminder
	Acknowledgment reminder.Acknowledgment
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	now        func() time.Time
}

// New marks an occurrence as taken. Acknowledging the single occurrence of a
// one-shot reminder deactivates it.
func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
		now:        now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	reminderRepository := uow.Reminders()
	if err := reminderRepository.Lock(ctx, input.ReminderID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	rem, err := reminderRepository.GetByID(ctx, input.ReminderID)
	if err != nil {
		switch {
		case errors.Is(err, reminder.ErrReminderDoesNotExist):
			s.log.Info(ctx, "Reminder not found.", logging.Entry("input", input))
		default:
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}
	if !rem.IsOwnedBy(input.UserID) {
		s.log.Info(ctx, "Reminder belongs to another user.", logging.Entry("input", input))
		return result, reminder.ErrReminderPermission
	}
	if !rem.Schedule.SetActive(true).IsOccurrence(input.FiredAt) {
		s.log.Info(ctx, "Reminder does not fire at the given time.", logging.Entry("input", input))
		return result, reminder.ErrNotAnOccurrence
	}

	now := s.now()
	acknowledgment, err := uow.Acknowledgments().Create(ctx, reminder.CreateAcknowledgmentInput{
		ReminderID:     rem.ID,
		OccurrenceAt:   input.FiredAt,
		AcknowledgedAt: now,
	})
	if errors.Is(err, reminder.ErrAlreadyAcknowledged) {
		s.log.Info(ctx, "Occurrence is already acknowledged.", logging.Entry("input", input))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if rem.IsActive && rem.IsSingleFired(input.FiredAt) {
		rem, err = reminderRepository.Update(ctx, reminder.UpdateInput{
			ID:         rem.ID,
			Medication: rem.Medication,
			Schedule:   rem.Schedule.SetActive(false),
			UpdatedAt:  now,
		})
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
			return result, err
		}
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Occurrence successfully acknowledged.",
		logging.Entry("reminderID", rem.ID),
		logging.Entry("firedAt", input.FiredAt),
		logging.Entry("isActive", rem.IsActive),
	)
	return Result{Reminder: rem, Acknowledgment: acknowledgment}, nil
}
