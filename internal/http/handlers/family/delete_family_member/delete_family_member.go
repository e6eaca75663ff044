package deletefamilymember

import (
	"errors"
	"net/http"
	"strconv"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/delete_family_member"
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
	rawMemberID := chi.URLParam(r, "memberID")
	memberID, err := strconv.ParseInt(rawMemberID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid family member ID", http.StatusBadRequest)
		return
	}

	_, err = h.service.Run(r.Context(), service.Input{MemberID: family.ID(memberID)})
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, family.ErrMemberDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case errors.Is(err, family.ErrMemberPermission):
			response.RenderError(rw, err.Error(), http.StatusForbidden)
		default:
			response.RenderInternalError(rw)
		}
		return
	}
	response.RenderNoContent(rw)
}
