package createreminder

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/create_reminder"
	"medmate/internal/http/handlers/response"

	validation "github.com/go-ozzo/ozzo-validation"
)

const MAX_TIME_ZONE_LEN = 64

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
	AnchorAt       string   `json:"anchor_at"`
	TimeZone       string   `json:"time_zone"`
	RepeatType     string   `json:"repeat_type"`
	RepeatDays     []string `json:"repeat_days"`
	Note           *string  `json:"note"`
	Medication     string   `json:"medication"`
	FamilyMemberID *int64   `json:"family_member_id"`
	PrescriptionID *int64   `json:"prescription_id"`
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.AnchorAt, validation.Required, validation.Length(0, 64)),
		validation.Field(&i.TimeZone, validation.Length(0, MAX_TIME_ZONE_LEN)),
		validation.Field(&i.RepeatType, validation.Required),
		validation.Field(&i.RepeatDays, validation.Length(0, 7)),
		validation.Field(&i.Note, validation.Length(0, reminder.MAX_NOTE_LEN)),
		validation.Field(&i.Medication, validation.Length(0, reminder.MAX_MEDICATION_LEN)),
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

	anchorAt, err := reminder.ParseAnchor(input.AnchorAt, input.TimeZone)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	serviceInput := service.Input{
		Medication: input.Medication,
		AnchorAt:   anchorAt,
		Recurrence: reminder.RecurrenceInput{Type: input.RepeatType, Days: input.RepeatDays},
	}
	if input.Note != nil {
		serviceInput.Note = c.Some(*input.Note)
	}
	if input.FamilyMemberID != nil {
		serviceInput.FamilyMemberID = c.Some(family.ID(*input.FamilyMemberID))
	}
	if input.PrescriptionID != nil {
		serviceInput.PrescriptionID = c.Some(prescription.ID(*input.PrescriptionID))
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, family.ErrMemberDoesNotExist), errors.Is(err, prescription.ErrPrescriptionDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case errors.Is(err, family.ErrMemberPermission), errors.Is(err, prescription.ErrPrescriptionPermission):
			response.RenderError(rw, err.Error(), http.StatusForbidden)
		case isExpectedError(err):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	rem := response.Reminder{}
	rem.FromDomainType(result.Reminder)
	response.Render(rw, Result{Reminder: rem}, http.StatusCreated)
}

func isExpectedError(err error) bool {
	return (errors.Is(err, reminder.ErrInvalidRecurrence) ||
		errors.Is(err, reminder.ErrInvalidAnchor) ||
		errors.Is(err, reminder.ErrActiveReminderLimitExceeded) ||
		errors.Is(err, reminder.ErrPrescriptionMismatch))
}
