package family

import (
	"context"
	"sync"
)

type FakeRepository struct {
	Members     []Member
	ReturnError error
	lock        sync.Mutex
}

func NewFakeRepository() *FakeRepository {
	return &FakeRepository{}
}

func (r *FakeRepository) Create(ctx context.Context, input CreateInput) (m Member, err error) {
	if r.ReturnError != nil {
		return m, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, existing := range r.Members {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	m = Member{
		ID:        maxID + 1,
		CreatedBy: input.CreatedBy,
		Name:      input.Name,
		Relation:  input.Relation,
		Gender:    input.Gender,
		BirthDate: input.BirthDate,
		CreatedAt: input.CreatedAt,
	}
	r.Members = append(r.Members, m)
	return m, nil
}

func (r *FakeRepository) GetByID(ctx context.Context, id ID) (m Member, err error) {
	if r.ReturnError != nil {
		return m, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, m := range r.Members {
		if m.ID == id {
			return m, nil
		}
	}
	return m, ErrMemberDoesNotExist
}

func (r *FakeRepository) Read(ctx context.Context, options ReadOptions) ([]Member, error) {
	if r.ReturnError != nil {
		return nil, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	members := make([]Member, 0, len(r.Members))
	for _, m := range r.Members {
		if options.CreatedByEquals.IsPresent && m.CreatedBy != options.CreatedByEquals.Value {
			continue
		}
		members = append(members, m)
	}
	return members, nil
}

func (r *FakeRepository) Update(ctx context.Context, input UpdateInput) (m Member, err error) {
	if r.ReturnError != nil {
		return m, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Members {
		if r.Members[ix].ID != input.ID {
			continue
		}
		if input.DoNameUpdate {
			r.Members[ix].Name = input.Name
		}
		if input.DoRelationUpdate {
			r.Members[ix].Relation = input.Relation
		}
		if input.DoGenderUpdate {
			r.Members[ix].Gender = input.Gender
		}
		if input.DoBirthDateUpdate {
			r.Members[ix].BirthDate = input.BirthDate
		}
		return r.Members[ix], nil
	}
	return m, ErrMemberDoesNotExist
}

func (r *FakeRepository) Delete(ctx context.Context, id ID) error {
	if r.ReturnError != nil {
		return r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, m := range r.Members {
		if m.ID == id {
			r.Members = append(r.Members[:ix], r.Members[ix+1:]...)
			return nil
		}
	}
	return ErrMemberDoesNotExist
}
