package getprescription

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/get_prescription"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func TestGetPrescriptionHandler(t *testing.T) {
	cases := []struct {
		id                     string
		url                    string
		err                    error
		expectedStatus         int
		expectedPrescriptionID prescription.ID
	}{
		{id: "success", url: "/prescriptions/6", expectedStatus: http.StatusOK, expectedPrescriptionID: 6},
		{id: "invalid-prescription-id", url: "/prescriptions/six", expectedStatus: http.StatusBadRequest},
		{id: "unauthenticated", url: "/prescriptions/6", err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized, expectedPrescriptionID: 6},
		{id: "not-found", url: "/prescriptions/6", err: prescription.ErrPrescriptionDoesNotExist, expectedStatus: http.StatusNotFound, expectedPrescriptionID: 6},
		{id: "foreign", url: "/prescriptions/6", err: prescription.ErrPrescriptionPermission, expectedStatus: http.StatusForbidden, expectedPrescriptionID: 6},
		{id: "internal", url: "/prescriptions/6", err: errors.New("boom"), expectedStatus: http.StatusInternalServerError, expectedPrescriptionID: 6},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			var prescriptionID prescription.ID
			handler := New(services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (result service.Result, err error) {
					prescriptionID = input.PrescriptionID
					result.Prescription = prescription.Prescription{ID: input.PrescriptionID, Medicine: "Aspirin"}
					return result, testcase.err
				},
			))

			router := chi.NewRouter()
			router.Method(http.MethodGet, "/prescriptions/{prescriptionID}", handler)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, testcase.url, nil))

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedPrescriptionID, prescriptionID)
			if testcase.expectedStatus == http.StatusOK {
				assert.Contains(t, rr.Body.String(), `"medicine":"Aspirin"`)
			}
		})
	}
}
