package deleteprescription

import (
	"errors"
	"net/http"
	"strconv"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/delete_prescription"
	"medmate/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service services.Service[service.Input, service.Result]
}

func New(
	service services.Service[service.Input, service.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawPrescriptionID := chi.URLParam(r, "prescriptionID")
	prescriptionID, err := strconv.ParseInt(rawPrescriptionID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid prescription ID", http.StatusBadRequest)
		return
	}

	_, err = h.service.Run(r.Context(), service.Input{PrescriptionID: prescription.ID(prescriptionID)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, prescription.ErrPrescriptionDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case errors.Is(err, prescription.ErrPrescriptionPermission):
			response.RenderError(rw, err.Error(), http.StatusForbidden)
		default:
			response.RenderInternalError(rw)
		}
		return
	}
	response.RenderNoContent(rw)
}
