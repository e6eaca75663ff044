package listprescriptions

import (
	"errors"
	"net/http"
	"strconv"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/list_prescriptions"
	"medmate/internal/http/handlers/response"
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

type Result struct {
	Prescriptions []response.Prescription `json:"prescriptions"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := service.Input{}
	if raw := r.URL.Query().Get("family_member_id"); raw != "" {
		memberID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.RenderError(rw, "invalid family_member_id query parameter", http.StatusBadRequest)
			return
		}
		input.FamilyMemberID = c.Some(family.ID(memberID))
	}

	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}
	response.Render(rw, Result{Prescriptions: response.PrescriptionsFromDomain(result.Prescriptions)}, http.StatusOK)
}
