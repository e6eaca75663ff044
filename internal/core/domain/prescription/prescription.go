package prescription

import (
	"strings"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/user"
)

type ID int64

const (
	MAX_MEDICINE_LEN = 256
	MAX_DOSAGE_LEN   = 128
	MAX_DURATION_LEN = 128
	MAX_DOCTOR_LEN   = 128
)

// Prescription is a medicine prescribed to the account owner or, when
// FamilyMemberID is set, to one of the owner's family members.
type Prescription struct {
	ID             ID
	CreatedBy      user.ID
	FamilyMemberID c.Optional[family.ID]
	Medicine       string
	Dosage         string
	Duration       string
	Doctor         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *Prescription) Validate() error {
	if strings.TrimSpace(p.Medicine) == "" {
		return e.NewInvalidStateErrorf("medicine is not set for prescription %d", p.ID)
	}
	if len(p.Medicine) > MAX_MEDICINE_LEN {
		return e.NewInvalidStateErrorf("medicine must not be longer than %d characters", MAX_MEDICINE_LEN)
	}
	return nil
}

func (p *Prescription) IsOwnedBy(userID user.ID) bool {
	return p.CreatedBy == userID
}
