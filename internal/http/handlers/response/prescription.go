package response

import (
	"time"

	"medmate/internal/core/domain/prescription"
)

type Prescription struct {
	ID             int64     `json:"id"`
	CreatedBy      int64     `json:"created_by"`
	FamilyMemberID *int64    `json:"family_member_id"`
	Medicine       string    `json:"medicine"`
	Dosage         string    `json:"dosage"`
	Duration       string    `json:"duration"`
	Doctor         string    `json:"doctor"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (p *Prescription) FromDomainType(dp prescription.Prescription) {
	p.ID = int64(dp.ID)
	p.CreatedBy = int64(dp.CreatedBy)
	if dp.FamilyMemberID.IsPresent {
		memberID := int64(dp.FamilyMemberID.Value)
		p.FamilyMemberID = &memberID
	}
	p.Medicine = dp.Medicine
	p.Dosage = dp.Dosage
	p.Duration = dp.Duration
	p.Doctor = dp.Doctor
	p.CreatedAt = dp.CreatedAt
	p.UpdatedAt = dp.UpdatedAt
}

func PrescriptionsFromDomain(prescriptions []prescription.Prescription) []Prescription {
	result := make([]Prescription, 0, len(prescriptions))
	for _, dp := range prescriptions {
		p := Prescription{}
		p.FromDomainType(dp)
		result = append(result, p)
	}
	return result
}
