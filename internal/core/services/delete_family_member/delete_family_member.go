package deletefamilymember

import (
	"context"
	"errors"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/logging"
	uow "medmate/internal/core/domain/unit_of_work"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	"medmate/internal/core/services/auth"
)

type Input struct {
	UserID   user.ID
	MemberID family.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Member                family.Member
	DetachedReminders     uint
	DetachedPrescriptions uint
}

type service struct {
	log        logging.Logger
	unitOfWork uow.UnitOfWork
}

// New deletes a family member. Reminders and prescriptions of the member
// are kept and become the account owner's own.
func New(
	log logging.Logger,
	unitOfWork uow.UnitOfWork,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if unitOfWork == nil {
		panic(e.NewNilArgumentError("unitOfWork"))
	}
	return &service{
		log:        log,
		unitOfWork: unitOfWork,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	uow, err := s.unitOfWork.Begin(ctx)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	defer uow.Rollback(ctx)

	member, err := uow.FamilyMembers().GetByID(ctx, input.MemberID)
	if errors.Is(err, family.ErrMemberDoesNotExist) {
		s.log.Info(ctx, "Family member not found.", logging.Entry("input", input))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if !member.IsOwnedBy(input.UserID) {
		s.log.Info(ctx, "Family member belongs to another user.", logging.Entry("input", input))
		return result, family.ErrMemberPermission
	}

	detachedReminders, err := uow.Reminders().DetachFamilyMember(ctx, member.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	detachedPrescriptions, err := uow.Prescriptions().DetachFamilyMember(ctx, member.ID)
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if err := uow.FamilyMembers().Delete(ctx, member.ID); err != nil {
		if !errors.Is(err, family.ErrMemberDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	if err := uow.Commit(ctx); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(
		ctx,
		"Family member has been successfully deleted.",
		logging.Entry("memberID", member.ID),
		logging.Entry("detachedReminders", detachedReminders),
		logging.Entry("detachedPrescriptions", detachedPrescriptions),
	)
	return Result{
		Member:                member,
		DetachedReminders:     detachedReminders,
		DetachedPrescriptions: detachedPrescriptions,
	}, nil
}
