package family

import (
	"strings"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/user"
)

type ID int64

const (
	MAX_NAME_LEN     = 128
	MAX_RELATION_LEN = 64
)

type Gender string

const (
	GENDER_MALE   Gender = "male"
	GENDER_FEMALE Gender = "female"
	GENDER_OTHER  Gender = "other"
)

func (g Gender) IsValid() bool {
	switch g {
	case GENDER_MALE, GENDER_FEMALE, GENDER_OTHER:
		return true
	}
	return false
}

// Member is a person whose medication is managed by the account owner.
type Member struct {
	ID        ID
	CreatedBy user.ID
	Name      string
	Relation  string
	Gender    c.Optional[Gender]
	BirthDate c.Optional[time.Time]
	CreatedAt time.Time
}

func (m *Member) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return e.NewInvalidStateErrorf("name is not set for family member %d", m.ID)
	}
	if m.Gender.IsPresent && !m.Gender.Value.IsValid() {
		return e.NewInvalidStateErrorf("family member %d has unknown gender %q", m.ID, m.Gender.Value)
	}
	return nil
}

func (m *Member) IsOwnedBy(userID user.ID) bool {
	return m.CreatedBy == userID
}
