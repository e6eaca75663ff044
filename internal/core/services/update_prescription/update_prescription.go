package updateprescription

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
	UserID                 user.ID
	PrescriptionID         prescription.ID
	DoFamilyMemberIDUpdate bool
	FamilyMemberID         c.Optional[family.ID]
	DoMedicineUpdate       bool
	Medicine               string
	DoDosageUpdate         bool
	Dosage                 string
	DoDurationUpdate       bool
	Duration               string
	DoDoctorUpdate         bool
	Doctor                 string
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

	if input.DoFamilyMemberIDUpdate && input.FamilyMemberID.IsPresent {
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

	updated, err := s.prescriptionRepository.Update(ctx, prescription.UpdateInput{
		ID:                     p.ID,
		DoFamilyMemberIDUpdate: input.DoFamilyMemberIDUpdate,
		FamilyMemberID:         input.FamilyMemberID,
		DoMedicineUpdate:       input.DoMedicineUpdate,
		Medicine:               strings.TrimSpace(input.Medicine),
		DoDosageUpdate:         input.DoDosageUpdate,
		Dosage:                 strings.TrimSpace(input.Dosage),
		DoDurationUpdate:       input.DoDurationUpdate,
		Duration:               strings.TrimSpace(input.Duration),
		DoDoctorUpdate:         input.DoDoctorUpdate,
		Doctor:                 strings.TrimSpace(input.Doctor),
		UpdatedAt:              s.now(),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(ctx, "Prescription successfully updated.", logging.Entry("prescription", updated))
	return Result{Prescription: updated}, nil
}
