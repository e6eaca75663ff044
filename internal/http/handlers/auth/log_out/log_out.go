package logout

import (
	"errors"
	"net/http"

	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	logout "medmate/internal/core/services/log_out"
	"medmate/internal/http/handlers/auth"
	"medmate/internal/http/handlers/response"
)

type Handler struct {
	service services.Service[logout.Input, logout.Result]
}

func New(
	service services.Service[logout.Input, logout.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	token, ok := auth.ParseToken(r)
	if !ok {
		response.RenderUnauthorized(rw)
		return
	}
	_, err := h.service.Run(r.Context(), logout.Input{Token: token})
	switch {
	case errors.Is(err, user.ErrSessionDoesNotExist):
		response.RenderUnauthorized(rw)
	case err != nil:
		response.RenderInternalError(rw)
	default:
		response.RenderNoContent(rw)
	}
}
