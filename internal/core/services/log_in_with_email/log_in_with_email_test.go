package loginwithemail

import (
	"context"
	"testing"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = c.Email("test@test.test")
	RAW_PASSWORD  = user.RawPassword("test-password")
	SESSION_TOKEN = "test-session-token"
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	UserRepository    *user.FakeUserRepository
	SessionRepository *user.FakeSessionRepository
	PasswordHasher    *user.FakePasswordHasher
	Service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.SessionRepository = user.NewFakeSessionRepository(suite.UserRepository)
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.SessionRepository,
		suite.PasswordHasher,
		user.NewFakeSessionTokenGenerator(SESSION_TOKEN),
		func() time.Time { return NOW },
	)

	passwordHash, err := suite.PasswordHasher.HashPassword(RAW_PASSWORD)
	suite.Require().Nil(err)
	_, err = suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Email:        EMAIL,
		PasswordHash: passwordHash,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
}

func TestLogInWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	ctx := context.Background()
	result, err := s.Service.Run(ctx, Input{Email: EMAIL, Password: RAW_PASSWORD})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(user.SessionToken(SESSION_TOKEN), result.Token)
	assert.Equal(EMAIL, result.User.Email)

	u, err := s.SessionRepository.GetUserByToken(ctx, result.Token)
	assert.Nil(err)
	assert.Equal(EMAIL, u.Email)
}

func (s *testSuite) TestInvalidCredentials() {
	cases := []struct {
		id       string
		email    c.Email
		password user.RawPassword
	}{
		{id: "wrong-password", email: EMAIL, password: user.RawPassword("wrong-password")},
		{id: "unknown-email", email: c.Email("unknown@test.test"), password: RAW_PASSWORD},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			_, err := s.Service.Run(context.Background(), Input{Email: testcase.email, Password: testcase.password})

			assert := s.Require()
			assert.ErrorIs(err, user.ErrInvalidCredentials)
			assert.Empty(s.SessionRepository.Sessions)
		})
	}
}

func (s *testSuite) TestRateLimitKey() {
	s.Require().Equal("log-in-with-email::test@test.test", Input{Email: EMAIL}.GetRateLimitKey())
}
