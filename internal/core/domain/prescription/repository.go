package prescription

import (
	"context"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/user"
)

type CreateInput struct {
	CreatedBy      user.ID
	FamilyMemberID c.Optional[family.ID]
	Medicine       string
	Dosage         string
	Duration       string
	Doctor         string
	CreatedAt      time.Time
}

type ReadOptions struct {
	CreatedByEquals      c.Optional[user.ID]
	FamilyMemberIDEquals c.Optional[family.ID]
}

type UpdateInput struct {
	ID                     ID
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
	UpdatedAt              time.Time
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Prescription, error)
	GetByID(ctx context.Context, id ID) (Prescription, error)
	Read(ctx context.Context, options ReadOptions) ([]Prescription, error)
	Update(ctx context.Context, input UpdateInput) (Prescription, error)
	Delete(ctx context.Context, id ID) error
	DetachFamilyMember(ctx context.Context, id family.ID) (uint, error)
}
