package createfamilymember

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/create_family_member"
	"medmate/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
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

type Input struct {
	Name      string  `json:"name"`
	Relation  string  `json:"relation"`
	Gender    *string `json:"gender"`
	BirthDate *string `json:"birth_date"`
}

type Result struct {
	Member response.FamilyMember `json:"member"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Name, validation.Required, validation.Length(1, family.MAX_NAME_LEN)),
		validation.Field(&i.Relation, validation.Length(0, family.MAX_RELATION_LEN)),
		validation.Field(&i.Gender, validation.In(response.GENDERS...)),
		validation.Field(&i.BirthDate, validation.Date(response.BIRTH_DATE_LAYOUT)),
	)
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

	var birthDate c.Optional[time.Time]
	if input.BirthDate != nil {
		d, err := time.Parse(response.BIRTH_DATE_LAYOUT, *input.BirthDate)
		if err != nil {
			response.RenderError(rw, "invalid birth date", http.StatusBadRequest)
			return
		}
		birthDate = c.Some(d)
	}

	serviceInput := service.Input{Name: input.Name, Relation: input.Relation, BirthDate: birthDate}
	if input.Gender != nil {
		serviceInput.Gender = c.Some(family.Gender(*input.Gender))
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, family.ErrBirthDateInFuture), errors.Is(err, family.ErrUnknownGender):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	member := response.FamilyMember{}
	member.FromDomainType(result.Member)
	response.Render(rw, Result{Member: member}, http.StatusCreated)
}
