package createprescription

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/create_prescription"
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
	FamilyMemberID *int64 `json:"family_member_id"`
	Medicine       string `json:"medicine"`
	Dosage         string `json:"dosage"`
	Duration       string `json:"duration"`
	Doctor         string `json:"doctor"`
}

type Result struct {
	Prescription response.Prescription `json:"prescription"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Medicine, validation.Required, validation.Length(1, prescription.MAX_MEDICINE_LEN)),
		validation.Field(&i.Dosage, validation.Length(0, prescription.MAX_DOSAGE_LEN)),
		validation.Field(&i.Duration, validation.Length(0, prescription.MAX_DURATION_LEN)),
		validation.Field(&i.Doctor, validation.Length(0, prescription.MAX_DOCTOR_LEN)),
	)
}

func (i Input) toServiceInput() service.Input {
	input := service.Input{
		Medicine: i.Medicine,
		Dosage:   i.Dosage,
		Duration: i.Duration,
		Doctor:   i.Doctor,
	}
	if i.FamilyMemberID != nil {
		input.FamilyMemberID = c.Some(family.ID(*i.FamilyMemberID))
	}
	return input
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

	p := response.Prescription{}
	p.FromDomainType(result.Prescription)
	response.Render(rw, Result{Prescription: p}, http.StatusCreated)
}
