package email

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

type fakeSES struct {
	inputs []*ses.SendTemplatedEmailInput
	err    error
}

func (f *fakeSES) SendTemplatedEmail(
	ctx context.Context,
	params *ses.SendTemplatedEmailInput,
	optFns ...func(*ses.Options),
) (*ses.SendTemplatedEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	return &ses.SendTemplatedEmailOutput{}, f.err
}

type testSuite struct {
	suite.Suite
	ses    *fakeSES
	users  *user.FakeUserRepository
	family *family.FakeRepository
	sender *EmailSender
	user   user.User
}

func (s *testSuite) SetupTest() {
	s.ses = &fakeSES{}
	s.users = user.NewFakeUserRepository()
	s.family = family.NewFakeRepository()
	s.sender = newEmailSender(s.ses, 100, "noreply@medmate.test", "reminder-template", s.users, s.family)

	u, err := s.users.Create(context.Background(), user.CreateUserInput{
		Email:        c.NewEmail("john@test.test"),
		Name:         "John",
		PasswordHash: user.PasswordHash("hash"),
		CreatedAt:    NOW,
	})
	s.Require().Nil(err)
	s.user = u
}

func TestEmailSender(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestNotifyOccurrence() {
	assert := s.Require()
	member, err := s.family.Create(context.Background(), family.CreateInput{CreatedBy: s.user.ID, Name: "Anna"})
	assert.Nil(err)

	err = s.sender.NotifyOccurrence(context.Background(), reminder.Occurrence{
		ReminderID:     1,
		CreatedBy:      s.user.ID,
		FamilyMemberID: c.Some(member.ID),
		Medication:     "Aspirin",
		Note:           c.Some("after breakfast"),
		At:             NOW,
	})
	assert.Nil(err)
	assert.Len(s.ses.inputs, 1)

	input := s.ses.inputs[0]
	assert.Equal("noreply@medmate.test", *input.Source)
	assert.Equal([]string{"john@test.test"}, input.Destination.ToAddresses)
	assert.Equal("reminder-template", *input.Template)

	params := reminderTemplateParams{}
	assert.Nil(json.Unmarshal([]byte(*input.TemplateData), &params))
	assert.Equal(reminderTemplateParams{
		Name:         "John",
		Medication:   "Aspirin",
		Note:         "after breakfast",
		FamilyMember: "Anna",
		At:           "Mon, 04 Mar 2024 08:00 UTC",
	}, params)
}

func (s *testSuite) TestUnknownUser() {
	err := s.sender.NotifyOccurrence(context.Background(), reminder.Occurrence{CreatedBy: s.user.ID + 1, At: NOW})
	s.ErrorIs(err, user.ErrUserDoesNotExist)
	s.Empty(s.ses.inputs)
}

func (s *testSuite) TestSESError() {
	s.ses.err = errors.New("throttled")
	err := s.sender.NotifyOccurrence(context.Background(), reminder.Occurrence{CreatedBy: s.user.ID, At: NOW})
	s.EqualError(err, "throttled")
}
