package deleteprescription

import (
	"context"
	"testing"

	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"

	"github.com/stretchr/testify/suite"
)

const USER_ID = user.ID(42)

type testSuite struct {
	suite.Suite
	prescriptions *prescription.FakeRepository
	service       services.Service[Input, Result]
	prescription  prescription.Prescription
}

func (suite *testSuite) SetupTest() {
	suite.prescriptions = prescription.NewFakeRepository()
	suite.service = New(logging.NewFakeLogger(), suite.prescriptions)

	p, err := suite.prescriptions.Create(context.Background(), prescription.CreateInput{
		CreatedBy: USER_ID,
		Medicine:  "Aspirin",
	})
	suite.Require().Nil(err)
	suite.prescription = p
}

func TestDeletePrescriptionService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestSuccess() {
	result, err := s.service.Run(context.Background(), Input{UserID: USER_ID, PrescriptionID: s.prescription.ID})

	assert := s.Require()
	assert.Nil(err)
	assert.Equal(s.prescription, result.Prescription)
	assert.Empty(s.prescriptions.Prescriptions)
}

func (s *testSuite) TestErrors() {
	cases := []struct {
		id       string
		input    Input
		expected error
	}{
		{
			id:       "another-user",
			input:    Input{UserID: USER_ID + 1, PrescriptionID: s.prescription.ID},
			expected: prescription.ErrPrescriptionPermission,
		},
		{
			id:       "not-found",
			input:    Input{UserID: USER_ID, PrescriptionID: s.prescription.ID + 1},
			expected: prescription.ErrPrescriptionDoesNotExist,
		},
	}

	for _, testcase := range cases {
		s.Run(testcase.id, func() {
			_, err := s.service.Run(context.Background(), testcase.input)

			assert := s.Require()
			assert.ErrorIs(err, testcase.expected)
			assert.Len(s.prescriptions.Prescriptions, 1)
		})
	}
}
