package createprescription

import (
	"context"
	"testing"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID(42)

var NOW = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	logger        *logging.FakeLogger
	members       *family.FakeRepository
	prescriptions *prescription.FakeRepository
	service       services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.logger = logging.NewFakeLogger()
	suite.members = family.NewFakeRepository()
	suite.prescriptions = prescription.NewFakeRepository()
	suite.service = New(suite.logger, suite.members, suite.prescriptions, func() time.Time { return NOW })
}

func TestCreatePrescriptionService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	member, err := s.members.Create(context.Background(), family.CreateInput{CreatedBy: USER_ID, Name: "Mom"})
	s.Require().Nil(err)

	result, err := s.service.Run(context.Background(), Input{
		UserID:         USER_ID,
		FamilyMemberID: c.Some(member.ID),
		Medicine:       " Amoxicillin ",
		Dosage:         "500 mg",
		Duration:       "10 days",
		Doctor:         " Dr. Smith ",
	})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(USER_ID, result.Prescription.CreatedBy)
	assert.Equal(c.Some(member.ID), result.Prescription.FamilyMemberID)
	assert.Equal("Amoxicillin", result.Prescription.Medicine)
	assert.Equal("500 mg", result.Prescription.Dosage)
	assert.Equal("10 days", result.Prescription.Duration)
	assert.Equal("Dr. Smith", result.Prescription.Doctor)
	assert.Equal(NOW, result.Prescription.CreatedAt)
	assert.Len(s.prescriptions.Prescriptions, 1)
}

func (s *testSuite) TestWithoutFamilyMember() {
	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID, Medicine: "Aspirin"})

	assert := s.Require()
	assert.Nil(err)
	assert.False(result.Prescription.FamilyMemberID.IsPresent)
}

func (s *testSuite) TestFamilyMemberErrors() {
	foreign, err := s.members.Create(context.Background(), family.CreateInput{CreatedBy: USER_ID + 1, Name: "Bob"})
	s.Require().Nil(err)

	cases := []struct {
		id       string
		memberID family.ID
		expected error
	}{
		{id: "foreign-member", memberID: foreign.ID, expected: family.ErrMemberPermission},
		{id: "missing-member", memberID: foreign.ID + 100, expected: family.ErrMemberDoesNotExist},
	}
	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			_, err := s.service.Run(context.Background(), Input{
				UserID:         USER_ID,
				FamilyMemberID: c.Some(testcase.memberID),
				Medicine:       "Aspirin",
			})

			assert := s.Require()
			assert.ErrorIs(err, testcase.expected)
			assert.Empty(s.prescriptions.Prescriptions)
		})
	}
}
