package createreminder

import (
	"context"
	"errors"
	"strings"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/reminder"
	uow "medmate/internal/core/domain/unit_of_work"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	"medmate/internal/core/services/auth"
)

type Input struct {
	UserID         user.ID
	FamilyMemberID c.Optional[family.ID]
	PrescriptionID c.Optional[prescription.ID]
	Medication     string
	AnchorAt       time.Time
	Recurrence     reminder.RecurrenceInput
	Note           c.Optional[string]
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

// New creates reminders. An activeReminderLimit of zero disables the limit.
// A reminder linked to a prescription inherits its family member and, when
// no medication is given, its medicine.
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
	schedule, err := reminder.NewSchedule(reminder.ScheduleParams{
		AnchorAt:   input.AnchorAt,
		Recurrence: input.Recurrence,
		Note:       input.Note,
	})
	if err != nil {
		s.log.Info(ctx, "Invalid reminder schedule.", logging.Entry("input", input), logging.Entry("err", err))
		return result, err
	}

	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	if input.PrescriptionID.IsPresent {
		if input, err = s.applyPrescription(ctx, uow, input); err != nil {
			return result, err
		}
	}
	if input.FamilyMemberID.IsPresent {
		if err := s.checkFamilyMember(ctx, uow, input); err != nil {
			return result, err
		}
	}
	if err := s.checkActiveReminderLimit(ctx, uow, input); err != nil {
		return result, err
	}

	createdReminder, err := uow.Reminders().Create(ctx, reminder.CreateInput{
		CreatedBy:      input.UserID,
		FamilyMemberID: input.FamilyMemberID,
		PrescriptionID: input.PrescriptionID,
		Medication:     strings.TrimSpace(input.Medication),
		Schedule:       schedule,
		CreatedAt:      s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input), logging.Entry("reminder", createdReminder))
		return result, err
	}

	s.log.Info(
		ctx,
		"Reminder successfully created.",
		logging.Entry("reminder", createdReminder),
	)
	return Result{Reminder: createdReminder}, nil
}

func (s *service) applyPrescription(ctx context.Context, uow uow.Context, input Input) (Input, error) {
	p, err := uow.Prescriptions().GetByID(ctx, input.PrescriptionID.Value)
	if errors.Is(err, prescription.ErrPrescriptionDoesNotExist) {
		s.log.Info(ctx, "Prescription not found.", logging.Entry("input", input))
		return input, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return input, err
	}
	if !p.IsOwnedBy(input.UserID) {
		s.log.Info(ctx, "Prescription belongs to another user.", logging.Entry("input", input))
		return input, prescription.ErrPrescriptionPermission
	}

	if p.FamilyMemberID.IsPresent {
		if input.FamilyMemberID.IsPresent && input.FamilyMemberID.Value != p.FamilyMemberID.Value {
			s.log.Info(ctx, "Prescription is issued for another family member.", logging.Entry("input", input))
			return input, reminder.ErrPrescriptionMismatch
		}
		input.FamilyMemberID = p.FamilyMemberID
	}
	if strings.TrimSpace(input.Medication) == "" {
		input.Medication = p.Medicine
	}
	return input, nil
}

func (s *service) checkFamilyMember(ctx context.Context, uow uow.Context, input Input) error {
	member, err := uow.FamilyMembers().GetByID(ctx, input.FamilyMemberID.Value)
	if errors.Is(err, family.ErrMemberDoesNotExist) {
		s.log.Info(ctx, "Family member not found.", logging.Entry("input", input))
		return err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return err
	}
	if !member.IsOwnedBy(input.UserID) {
		s.log.Info(ctx, "Family member belongs to another user.", logging.Entry("input", input))
		return family.ErrMemberPermission
	}
	return nil
}

func (s *service) checkActiveReminderLimit(ctx context.Context, uow uow.Context, input Input) error {
	if s.activeReminderLimit == 0 {
		return nil
	}
	activeReminderCount, err := uow.Reminders().Count(ctx, reminder.ReadOptions{
		CreatedByEquals: c.NewOptional(input.UserID, true),
		IsActiveEquals:  c.NewOptional(true, true),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return err
	}
	if activeReminderCount >= s.activeReminderLimit {
		s.log.Info(
			ctx,
			"Active reminder limit exceeded.",
			logging.Entry("userID", input.UserID),
			logging.Entry("count", activeReminderCount),
		)
		return reminder.ErrActiveReminderLimitExceeded
	}
	return nil
}
