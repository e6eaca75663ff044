package listprescriptions

import (
	"context"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	"medmate/internal/core/services/auth"
)

type Input struct {
	UserID         user.ID
	FamilyMemberID c.Optional[family.ID]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Prescriptions []prescription.Prescription
}

type service struct {
	log                    logging.Logger
	prescriptionRepository prescription.Repository
}

// New lists prescriptions of the user, newest first. A family member filter
// that matches none of the user's prescriptions yields an empty list.
func New(
	log logging.Logger,
	prescriptionRepository prescription.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if prescriptionRepository == nil {
		panic(e.NewNilArgumentError("prescriptionRepository"))
	}
	return &service{
		log:                    log,
		prescriptionRepository: prescriptionRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	prescriptions, err := s.prescriptionRepository.Read(ctx, prescription.ReadOptions{
		CreatedByEquals:      c.Some(input.UserID),
		FamilyMemberIDEquals: input.FamilyMemberID,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	s.log.Info(
		ctx,
		"Prescriptions successfully read.",
		logging.Entry("input", input),
		logging.Entry("count", len(prescriptions)),
	)
	return Result{Prescriptions: prescriptions}, nil
}
