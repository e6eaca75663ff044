package listfamilymembers

import (
	"context"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	"medmate/internal/core/services/auth"
)

type Input struct {
	UserID user.ID
}

func (i Input) WithAuthenticatedUser(u user.User) auth.Input {
	i.UserID = u.ID
	return i
}

type Result struct {
	Members []family.Member
}

type service struct {
	log              logging.Logger
	familyRepository family.Repository
}

func New(
	log logging.Logger,
	familyRepository family.Repository,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if familyRepository == nil {
		panic(e.NewNilArgumentError("familyRepository"))
	}
	return &service{
		log:              log,
		familyRepository: familyRepository,
	}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	members, err := s.familyRepository.Read(ctx, family.ReadOptions{
		CreatedByEquals: c.NewOptional(input.UserID, true),
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	s.log.Info(
		ctx,
		"Family members successfully read.",
		logging.Entry("userID", input.UserID),
		logging.Entry("count", len(members)),
	)
	return Result{Members: members}, nil
}
