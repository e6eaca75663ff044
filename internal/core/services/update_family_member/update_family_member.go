package updatefamilymember

import (
	"context"
	"errors"
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
	UserID            user.ID
	MemberID          family.ID
	DoNameUpdate      bool
	Name              string
	DoRelationUpdate  bool
	Relation          string
	DoGenderUpdate    bool
	Gender            c.Optional[family.Gender]
	DoBirthDateUpdate bool
	BirthDate         c.Optional[time.Time]
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
	if input.DoGenderUpdate && input.Gender.IsPresent && !input.Gender.Value.IsValid() {
		return result, family.ErrUnknownGender
	}
	if input.DoBirthDateUpdate && input.BirthDate.IsPresent && input.BirthDate.Value.After(s.now()) {
		return result, family.ErrBirthDateInFuture
	}

	member, err := s.familyRepository.GetByID(ctx, input.MemberID)
	if errors.Is(err, family.ErrMemberDoesNotExist) {
		s.log.Info(ctx, "Family member not found.", logging.Entry("input", input))
		return result, err
	}
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	if !member.IsOwnedBy(input.UserID) {
		s.log.Info(ctx, "Family member belongs to another user.", logging.Entry("input", input))
		return result, family.ErrMemberPermission
	}

	updated, err := s.familyRepository.Update(ctx, family.UpdateInput{
		ID:                member.ID,
		DoNameUpdate:      input.DoNameUpdate,
		Name:              strings.TrimSpace(input.Name),
		DoRelationUpdate:  input.DoRelationUpdate,
		Relation:          strings.TrimSpace(input.Relation),
		DoGenderUpdate:    input.DoGenderUpdate,
		Gender:            input.Gender,
		DoBirthDateUpdate: input.DoBirthDateUpdate,
		BirthDate:         input.BirthDate,
	})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}

	s.log.Info(ctx, "Family member successfully updated.", logging.Entry("member", updated))
	return Result{Member: updated}, nil
}
