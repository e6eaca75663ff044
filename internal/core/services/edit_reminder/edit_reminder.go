package editreminder

import (
	"context"
	"errors"
	"strings"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/reminder"
	uow "medmate/internal/core/domain/unit_of_work"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	"medmate/internal/core/services/auth"
)

type Input struct {
	UserID             user.ID
	ReminderID         reminder.ID
	DoAnchorAtUpdate   bool
	AnchorAt           time.Time
	DoRecurrenceUpdate bool
	Recurrence         reminder.RecurrenceInput
	DoNoteUpdate       bool
	Note               c.Optional[string]
	DoMedicationUpdate bool
	Medication         string

	DoPrescriptionIDUpdate bool
	PrescriptionID         c.Optional[prescription.ID]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Reminder reminder.Reminder
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
	now        func() time.Time
}

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

	schedule, err := rem.Schedule.Edit(reminder.EditParams{
		DoAnchorAtUpdate:   input.DoAnchorAtUpdate,
		AnchorAt:           input.AnchorAt,
		DoRecurrenceUpdate: input.DoRecurrenceUpdate,
		Recurrence:         input.Recurrence,
		DoNoteUpdate:       input.DoNoteUpdate,
		Note:               input.Note,
	})
	if err != nil {
		s.log.Info(ctx, "Invalid reminder schedule.", logging.Entry("input", input), logging.Entry("err", err))
		return result, err
	}
	if input.DoPrescriptionIDUpdate && input.PrescriptionID.IsPresent {
		if err := s.checkPrescription(ctx, uow, rem, input); err != nil {
			return result, err
		}
	}
	medication := rem.Medication
	if input.DoMedicationUpdate {
		medication = strings.TrimSpace(input.Medication)
	}

	updatedReminder, err := reminderRepository.Update(ctx, reminder.UpdateInput{
		ID:                     rem.ID,
		Medication:             medication,
		Schedule:               schedule,
		DoPrescriptionIDUpdate: input.DoPrescriptionIDUpdate,
		PrescriptionID:         input.PrescriptionID,
		UpdatedAt:              s.now(),
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
		"Reminder successfully updated.",
		logging.Entry("input", input),
		logging.Entry("reminder", updatedReminder),
	)
	return Result{Reminder: updatedReminder}, nil
}

func (s *service) checkPrescription(ctx context.Context, uow uow.Context, rem reminder.Reminder, input Input) error {
	p, err := uow.Prescriptions().GetByID(ctx, input.PrescriptionID.Value)
	if errors.Is(err, prescription.ErrPrescriptionDoesNotExist) {
		s.log.Info(ctx, "Prescription not found.", logging.Entry("input", input))
		return err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return err
	}
	if !p.IsOwnedBy(input.UserID) {
		s.log.Info(ctx, "Prescription belongs to another user.", logging.Entry("input", input))
		return prescription.ErrPrescriptionPermission
	}
	if p.FamilyMemberID.IsPresent && p.FamilyMemberID != rem.FamilyMemberID {
		s.log.Info(ctx, "Prescription is issued for another family member.", logging.Entry("input", input))
		return reminder.ErrPrescriptionMismatch
	}
	return nil
}
