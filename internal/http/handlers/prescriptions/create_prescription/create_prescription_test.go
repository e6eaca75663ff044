package createprescription

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/create_prescription"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(handler http.Handler, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/prescriptions", strings.NewReader(body)))
	return rr
}

func TestCreatePrescriptionHandler(t *testing.T) {
	var captured service.Input
	handler := New(services.ServiceFunc[service.Input, service.Result](
		func(ctx context.Context, input service.Input) (service.Result, error) {
			captured = input
			return service.Result{Prescription: prescription.Prescription{
				ID:             4,
				CreatedBy:      1,
				FamilyMemberID: input.FamilyMemberID,
				Medicine:       input.Medicine,
				Dosage:         input.Dosage,
			}}, nil
		},
	))

	rr := post(handler, `{"medicine": "Amoxicillin", "dosage": "500 mg", "duration": "10 days", "doctor": "Dr. Lee", "family_member_id": 2}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, service.Input{
		FamilyMemberID: c.Some(family.ID(2)),
		Medicine:       "Amoxicillin",
		Dosage:         "500 mg",
		Duration:       "10 days",
		Doctor:         "Dr. Lee",
	}, captured)

	var res struct {
		Prescription struct {
			ID             int64  `json:"id"`
			FamilyMemberID *int64 `json:"family_member_id"`
			Medicine       string `json:"medicine"`
		} `json:"prescription"`
	}
	require.Nil(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, int64(4), res.Prescription.ID)
	require.NotNil(t, res.Prescription.FamilyMemberID)
	assert.Equal(t, int64(2), *res.Prescription.FamilyMemberID)
	assert.Equal(t, "Amoxicillin", res.Prescription.Medicine)
}

func TestCreatePrescriptionHandlerErrors(t *testing.T) {
	const BODY = `{"medicine": "Aspirin"}`

	cases := []struct {
		id             string
		body           string
		err            error
		expectedStatus int
	}{
		{id: "malformed", body: `{"medicine": `, expectedStatus: http.StatusBadRequest},
		{id: "no-medicine", body: `{"dosage": "1 pill"}`, expectedStatus: http.StatusBadRequest},
		{id: "long-dosage", body: `{"medicine": "Aspirin", "dosage": "` + strings.Repeat("a", prescription.MAX_DOSAGE_LEN+1) + `"}`, expectedStatus: http.StatusBadRequest},
		{id: "unauthenticated", body: BODY, err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{id: "member-not-found", body: BODY, err: family.ErrMemberDoesNotExist, expectedStatus: http.StatusNotFound},
		{id: "foreign-member", body: BODY, err: family.ErrMemberPermission, expectedStatus: http.StatusForbidden},
		{id: "internal", body: BODY, err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			handler := New(services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (result service.Result, err error) {
					return result, testcase.err
				},
			))
			rr := post(handler, testcase.body)
			assert.Equal(t, testcase.expectedStatus, rr.Code)
		})
	}
}
