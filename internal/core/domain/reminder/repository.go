package reminder

import (
	"context"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/user"
)

type CreateInput struct {
	CreatedBy      user.ID
	FamilyMemberID c.Optional[family.ID]
	PrescriptionID c.Optional[prescription.ID]
	Medication     string
	Schedule       Schedule
	CreatedAt      time.Time
}

type ReadOptions struct {
	CreatedByEquals      c.Optional[user.ID]
	FamilyMemberIDEquals c.Optional[family.ID]
	IsActiveEquals       c.Optional[bool]
	AnchorAtNotAfter     c.Optional[time.Time]
	OrderBy              OrderBy
	Limit                c.Optional[uint]
	Offset               uint
}

// UpdateInput replaces the medication and the schedule of a reminder. The
// prescription link is replaced only when DoPrescriptionIDUpdate is set.
type UpdateInput struct {
	ID                     ID
	Medication             string
	Schedule               Schedule
	DoPrescriptionIDUpdate bool
	PrescriptionID         c.Optional[prescription.ID]
	UpdatedAt              time.Time
}

type ReminderRepository interface {
	Create(ctx context.Context, input CreateInput) (Reminder, error)
	Lock(ctx context.Context, id ID) error
	GetByID(ctx context.Context, id ID) (Reminder, error)
	Read(ctx context.Context, options ReadOptions) ([]Reminder, error)
	Count(ctx context.Context, options ReadOptions) (uint, error)
	Update(ctx context.Context, input UpdateInput) (Reminder, error)
	Delete(ctx context.Context, id ID) error
	// DetachFamilyMember unlinks every reminder of the member and returns
	// the number of reminders changed.
	DetachFamilyMember(ctx context.Context, id family.ID) (uint, error)
}

type CreateAcknowledgmentInput struct {
	ReminderID     ID
	OccurrenceAt   time.Time
	AcknowledgedAt time.Time
}

type AcknowledgmentReadOptions struct {
	ReminderIDIn     []ID
	OccurrenceAtFrom time.Time
	OccurrenceAtTo   time.Time
}

type AcknowledgmentRepository interface {
	// Create fails with ErrAlreadyAcknowledged for a repeated occurrence.
	Create(ctx context.Context, input CreateAcknowledgmentInput) (Acknowledgment, error)
	Read(ctx context.Context, options AcknowledgmentReadOptions) ([]Acknowledgment, error)
}
