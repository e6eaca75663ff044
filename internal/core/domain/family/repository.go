package family

import (
	"context"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/user"
)

type CreateInput struct {
	CreatedBy user.ID
	Name      string
	Relation  string
	Gender    c.Optional[Gender]
	BirthDate c.Optional[time.Time]
	CreatedAt time.Time
}

type ReadOptions struct {
	CreatedByEquals c.Optional[user.ID]
}

type UpdateInput struct {
	ID                ID
	DoNameUpdate      bool
	Name              string
	DoRelationUpdate  bool
	Relation          string
	DoGenderUpdate    bool
	Gender            c.Optional[Gender]
	DoBirthDateUpdate bool
	BirthDate         c.Optional[time.Time]
}

type Repository interface {
	Create(ctx context.Context, input CreateInput) (Member, error)
	GetByID(ctx context.Context, id ID) (Member, error)
	Read(ctx context.Context, options ReadOptions) ([]Member, error)
	Update(ctx context.Context, input UpdateInput) (Member, error)
	Delete(ctx context.Context, id ID) error
}
