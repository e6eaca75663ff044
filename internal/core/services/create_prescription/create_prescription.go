package createprescription

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
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	"medmate/internal/core/services/auth"
)

type Input struct {
	UserID         user.ID
	FamilyMemberID c.Optional[family.ID]
	Medicine       string
	Dosage         string
	Duration       string
	Doctor         string
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Prescription prescription.Prescription
}

type service struct {
	log                    logging.Logger
	familyRepository       family.Repository
	prescriptionRepository prescription.Repository
	now                    func() time.Time
}

func New(
	log logging.Logger,
	familyRepository family.Repository,
	prescriptionRepository prescription.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if familyRepository == nil {
		panic(e.NewNilArgumentError("familyRepository"))
	}
	if prescriptionRepository == nil {
		panic(e.NewNilArgumentError("prescriptionRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:                    log,
		familyRepository:       familyRepository,
		prescriptionRepository: prescriptionRepository,
		now:                    now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	if input.FamilyMemberID.IsPresent {
		member, err := s.familyRepository.GetByID(ctx, input.FamilyMemberID.Value)
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
	}

	created, err := s.prescriptionRepository.Create(ctx, prescription.CreateInput{
		CreatedBy:      input.UserID,
		FamilyMemberID: input.FamilyMemberID,
		Medicine:       strings.TrimSpace(input.Medicine),
		Dosage:         strings.TrimSpace(input.Dosage),
		Duration:       strings.TrimSpace(input.Duration),
		Doctor:         strings.TrimSpace(input.Doctor),
		CreatedAt:      s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(ctx, "Prescription successfully created.", logging.Entry("prescription", created))
	return Result{Prescription: created}, nil
}
