package deleteprescription

import (
	"context"
	"errors"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	"medmate/internal/core/services/auth"
)

type Input struct {
	UserID         user.ID
	PrescriptionID prescription.ID
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
	prescriptionRepository prescription.Repository
}

// New deletes a prescription. Reminders linked to it are kept and unlinked
// by the storage layer.
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
	p, err := s.prescriptionRepository.GetByID(ctx, input.PrescriptionID)
	if errors.Is(err, prescription.ErrPrescriptionDoesNotExist) {
		s.log.Info(ctx, "Prescription not found.", logging.Entry("input", input))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if !p.IsOwnedBy(input.UserID) {
		s.log.Info(ctx, "Prescription belongs to another user.", logging.Entry("input", input))
		return result, prescription.ErrPrescriptionPermission
	}

	if err := s.prescriptionRepository.Delete(ctx, p.ID); err != nil {
		if !errors.Is(err, prescription.ErrPrescriptionDoesNotExist) {
			logging.Error(ctx, s.log, err, logging.Entry("input", input))
		}
		return result, err
	}

	s.log.Info(ctx, "Prescription has been successfully deleted.", logging.Entry("prescriptionID", p.ID))
	return Result{Prescription: p}, nil
}
