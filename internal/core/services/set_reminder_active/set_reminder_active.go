package setreminderactive

import (
	"context"
	"errors"
	"time"

	c "medmate/internal/core/domain/common"
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
	IsActive   bool
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log                 logging.Logger
	unitOfWork          uow.UnitOfWork
	activeReminderLimit uint
	now                 func() time.Time
}

// New toggles reminders on and off. Activation respects activeReminderLimit
// unless it is zero.
func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
	activeReminderLimit uint,
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
		log:                 log,
		unitOfWork:          unitOfWork,
		activeReminderLimit: activeReminderLimit,
		now:                 now,
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
	if rem.IsActive == input.IsActive {
		return Result{Reminder: rem}, nil
	}

	if input.IsActive && s.activeReminderLimit > 0 {
		activeReminderCount, err := reminderRepository.Count(ctx, reminder.ReadOptions{
			CreatedByEquals: c.NewOptional(input.UserID, true),
			IsActiveEquals:  c.NewOptional(true, true),
		})
		if err != nil {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
			return result, err
		}
		if activeReminderCount >= s.activeReminderLimit {
			s.log.Info(ctx, "Active reminder limit exceeded.", logging.Entry("input", input))
			return result, reminder.ErrActiveReminderLimitExceeded
		}
	}

	updatedReminder, err := reminderRepository.Update(ctx, reminder.UpdateInput{
		ID:         rem.ID,
		Medication: rem.Medication,
		Schedule:   rem.Schedule.SetActive(input.IsActive),
		UpdatedAt:  s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder activity successfully changed.",
		logging.Entry("reminderID", updatedReminder.ID),
		logging.Entry("isActive", updatedReminder.IsActive),
	)
	return Result{Reminder: updatedReminder}, nil
}
