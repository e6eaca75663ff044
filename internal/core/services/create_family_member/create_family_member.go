package createfamilymember

import (
	"context"
	"strings"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	"medmate/internal/core/services/auth"
)

type Input struct {
	UserID    user.ID
	Name      string
	Relation  string
	Gender    c.Optional[family.Gender]
	BirthDate c.Optional[time.Time]
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Member family.Member
}

type service struct {
	log              logging.Logger
	familyRepository family.Repository
	now              func() time.Time
}

func New(
	log logging.Logger,
	familyRepository family.Repository,
	now func() time.Time,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if familyRepository == nil {
		panic(e.NewNilArgumentError("familyRepository"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	return &service{
		log:              log,
		familyRepository: familyRepository,
		now:              now,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	now := s.now()
	if input.Gender.IsPresent && !input.Gender.Value.IsValid() {
		return result, family.ErrUnknownGender
	}
	if input.BirthDate.IsPresent && input.BirthDate.Value.After(now) {
		return result, family.ErrBirthDateInFuture
	}

	member, err := s.familyRepository.Create(ctx, family.CreateInput{
		CreatedBy: input.UserID,
		Name:      strings.TrimSpace(input.Name),
		Relation:  strings.TrimSpace(input.Relation),
		Gender:    input.Gender,
		BirthDate: input.BirthDate,
		CreatedAt: now,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(ctx, "Family member successfully created.", logging.Entry("member", member))
	return Result{Member: member}, nil
}
