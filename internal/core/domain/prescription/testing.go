package prescription

import (
	"context"
	"sync"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
)

type FakeRepository struct {
	Prescriptions []Prescription
	ReturnError   error
	lock          sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (p Prescription, err error) {
	if r.ReturnError != nil {
		return p, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, existing := range r.Prescriptions {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	p = Prescription{
		ID:             maxID + 1,
		CreatedBy:      input.CreatedBy,
		FamilyMemberID: input.FamilyMemberID,
		Medicine:       input.Medicine,
		Dosage:         input.Dosage,
		Duration:       input.Duration,
		Doctor:         input.Doctor,
		CreatedAt:      input.CreatedAt,
		UpdatedAt:      input.CreatedAt,
	}
	r.Prescriptions = append(r.Prescriptions, p)
	return p, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (p Prescription, err error) {
	if r.ReturnError != nil {
		return p, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, p := range r.Prescriptions {
		if p.ID == id {
			return p, nil
		}
	}
	return p, ErrPrescriptionDoesNotExist
}

func (r *FakeRepository) Read(ctx context.Context, options ReadOptions) ([]Prescription, error) {
	if r.ReturnError != nil {
		return nil, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	prescriptions := make([]Prescription, 0, len(r.Prescriptions))
	for _, p := range r.Prescriptions {
		if options.CreatedByEquals.IsPresent && p.CreatedBy != options.CreatedByEquals.Value {
			continue
		}
		if options.FamilyMemberIDEquals.IsPresent &&
			(!p.FamilyMemberID.IsPresent || p.FamilyMemberID.Value != options.FamilyMemberIDEquals.Value) {
			continue
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, nil
}

func (r *FakeRepository) Update(ctx context.Context, input UpdateInput) (p Prescription, err error) {
	if r.ReturnError != nil {
		return p, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Prescriptions {
		if r.Prescriptions[ix].ID != input.ID {
			continue
		}
		if input.DoFamilyMemberIDUpdate {
			r.Prescriptions[ix].FamilyMemberID = input.FamilyMemberID
		}
		if input.DoMedicineUpdate {
			r.Prescriptions[ix].Medicine = input.Medicine
		}
		if input.DoDosageUpdate {
			r.Prescriptions[ix].Dosage = input.Dosage
		}
		if input.DoDurationUpdate {
			r.Prescriptions[ix].Duration = input.Duration
		}
		if input.DoDoctorUpdate {
			r.Prescriptions[ix].Doctor = input.Doctor
		}
		r.Prescriptions[ix].UpdatedAt = input.UpdatedAt
		return r.Prescriptions[ix], nil
	}
	return p, ErrPrescriptionDoesNotExist
}

func (r *FakeRepository) Delete(ctx context.Context, id ID) error {
	if r.ReturnError != nil {
		return r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, p := range r.Prescriptions {
		if p.ID == id {
			r.Prescriptions = append(r.Prescriptions[:ix], r.Prescriptions[ix+1:]...)
			return nil
		}
	}
	return ErrPrescriptionDoesNotExist
}

func (r *FakeRepository) DetachFamilyMember(ctx context.Context, id family.ID) (uint, error) {
	if r.ReturnError != nil {
		return 0, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	detached := uint(0)
	for ix := range r.Prescriptions {
		if r.Prescriptions[ix].FamilyMemberID.IsPresent && r.Prescriptions[ix].FamilyMemberID.Value == id {
			r.Prescriptions[ix].FamilyMemberID = c.Optional[family.ID]{}
			detached++
		}
	}
	return detached, nil
}
