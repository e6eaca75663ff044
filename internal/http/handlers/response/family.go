package response

import (
	"time"

	"medmate/internal/core/domain/family"
)

const BIRTH_DATE_LAYOUT = "2006-01-02"

var GENDERS = []interface{}{
	string(family.GENDER_MALE),
	string(family.GENDER_FEMALE),
	string(family.GENDER_OTHER),
}

type FamilyMember struct {
	ID        int64     `json:"id"`
	CreatedBy int64     `json:"created_by"`
	Name      string    `json:"name"`
	Relation  string    `json:"relation"`
	Gender    *string   `json:"gender"`
	BirthDate *string   `json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *FamilyMember) FromDomainType(dm family.Member) {
	m.ID = int64(dm.ID)
	m.CreatedBy = int64(dm.CreatedBy)
	m.Name = dm.Name
	m.Relation = dm.Relation
	if dm.Gender.IsPresent {
		gender := string(dm.Gender.Value)
		m.Gender = &gender
	}
	if dm.BirthDate.IsPresent {
		birthDate := dm.BirthDate.Value.Format(BIRTH_DATE_LAYOUT)
		m.BirthDate = &birthDate
	}
	m.CreatedAt = dm.CreatedAt
}

func FamilyMembersFromDomain(members []family.Member) []FamilyMember {
	result := make([]FamilyMember, 0, len(members))
	for _, dm := range members {
		m := FamilyMember{}
		m.FromDomainType(dm)
		result = append(result, m)
	}
	return result
}
