package getprescription

import (
	"context"
	"testing"

	"medmate/internal/core/domain/logging"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

const USER_ID = user.ID(42)

func TestGetPrescription(t *testing.T) {
	repository := prescription.NewFakeRepository()
	p, err := repository.Create(context.Background(), prescription.CreateInput{CreatedBy: USER_ID, Medicine: "Aspirin"})
	require.Nil(t, err)
	service := New(logging.NewFakeLogger(), repository)

	type test struct {
		id       string
		input    Input
		expected error
	}
	cases := []test{
		{id: "own", input: Input{UserID: USER_ID, PrescriptionID: p.ID}},
		{
			id:       "another-user",
			input:    Input{UserID: USER_ID + 1, PrescriptionID: p.ID},
			expected: prescription.ErrPrescriptionPermission,
		},
		{
			id:       "not-found",
			input:    Input{UserID: USER_ID, PrescriptionID: p.ID + 1},
			expected: prescription.ErrPrescriptionDoesNotExist,
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			assert := require.New(t)
			result, err := service.Run(context.Background(), testcase.input)
			if testcase.expected != nil {
				assert.ErrorIs(err, testcase.expected)
				return
			}
			assert.Nil(err)
			assert.Equal(p, result.Prescription)
		})
	}
}
