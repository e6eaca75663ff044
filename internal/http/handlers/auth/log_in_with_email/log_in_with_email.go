package loginwithemail

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	ratelimiter "medmate/internal/core/domain/rate_limiter"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	loginwithemail "medmate/internal/core/services/log_in_with_email"
	"medmate/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type Handler struct {
	service services.Service[loginwithemail.Input, loginwithemail.Result]
}

func New(
	service services.Service[loginwithemail.Input, loginwithemail.Result],
) *Handler {
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{service: service}
}

type Input struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Result struct {
	Token string        `json:"token"`
	User  response.User `json:"user"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Email, validation.Required, validation.Length(0, 512), is.Email),
		validation.Field(&i.Password, validation.Required, validation.Length(0, 512)),
	)
}

func (i Input) toServiceInput() loginwithemail.Input {
	return loginwithemail.Input{
		Email:    c.NewEmail(i.Email),
		Password: user.RawPassword(i.Password),
	}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	result, err := h.service.Run(r.Context(), input.toServiceInput())
	if err != nil {
		switch {
		case errors.Is(err, ratelimiter.ErrRateLimitExceeded):
			response.RenderRateLimitExceeded(rw)
		case errors.Is(err, user.ErrInvalidCredentials):
			response.RenderError(rw, "invalid credentials", http.StatusUnauthorized)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	res := Result{Token: string(result.Token)}
	res.User.FromDomainUser(result.User)
	response.Render(rw, res, http.StatusOK)
}
