package updatefamilymember

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/update_family_member"
	"medmate/internal/http/handlers/response"

	"github.com/go-chi/chi/v5"
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
	Name              *string `json:"name"`
	Relation          *string `json:"relation"`
	DoGenderUpdate    bool    `json:"do_gender_update"`
	Gender            *string `json:"gender"`
	DoBirthDateUpdate bool    `json:"do_birth_date_update"`
	BirthDate         *string `json:"birth_date"`
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
		validation.Field(&i.Name, validation.NilOrNotEmpty, validation.Length(1, family.MAX_NAME_LEN)),
		validation.Field(&i.Relation, validation.Length(0, family.MAX_RELATION_LEN)),
		validation.Field(&i.Gender, validation.In(response.GENDERS...)),
		validation.Field(&i.BirthDate, validation.Date(response.BIRTH_DATE_LAYOUT)),
	)
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawMemberID := chi.URLParam(r, "memberID")
	memberID, err := strconv.ParseInt(rawMemberID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid family member ID", http.StatusBadRequest)
		return
	}

	input := Input{}
	if err := input.FromJSON(r.Body); err != nil {
		response.RenderError(rw, "invalid request data", http.StatusBadRequest)
		return
	}
	if err := input.Validate(); err != nil {
		response.RenderValidationError(rw, err)
		return
	}

	serviceInput := service.Input{
		MemberID:          family.ID(memberID),
		DoGenderUpdate:    input.DoGenderUpdate,
		DoBirthDateUpdate: input.DoBirthDateUpdate,
	}
	if input.Name != nil {
		serviceInput.DoNameUpdate = true
		serviceInput.Name = *input.Name
	}
	if input.Relation != nil {
		serviceInput.DoRelationUpdate = true
		serviceInput.Relation = *input.Relation
	}
	if input.DoGenderUpdate && input.Gender != nil {
		serviceInput.Gender = c.Some(family.Gender(*input.Gender))
	}
	if input.DoBirthDateUpdate && input.BirthDate != nil {
		d, err := time.Parse(response.BIRTH_DATE_LAYOUT, *input.BirthDate)
		if err != nil {
			response.RenderError(rw, "invalid birth date", http.StatusBadRequest)
			return
		}
		serviceInput.BirthDate = c.Some(d)
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, family.ErrMemberDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case errors.Is(err, family.ErrMemberPermission):
			response.RenderError(rw, err.Error(), http.StatusForbidden)
		case errors.Is(err, family.ErrBirthDateInFuture), errors.Is(err, family.ErrUnknownGender):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	member := response.FamilyMember{}
	member.FromDomainType(result.Member)
	response.Render(rw, Result{Member: member}, http.StatusOK)
}
