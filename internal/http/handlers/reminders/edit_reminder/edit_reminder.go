package editreminder

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/prescription"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/edit_reminder"
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
	AnchorAt     *string  `json:"anchor_at"`
	TimeZone     *string  `json:"time_zone"`
	RepeatType   *string  `json:"repeat_type"`
	RepeatDays   []string `json:"repeat_days"`
	DoNoteUpdate bool     `json:"do_note_update"`
	Note         *string  `json:"note"`
	Medication   *string  `json:"medication"`

	DoPrescriptionUpdate bool   `json:"do_prescription_update"`
	PrescriptionID       *int64 `json:"prescription_id"`
}

type Result struct {
	Reminder response.Reminder `json:"reminder"`
}

func (i *Input) FromJSON(r io.Reader) error {
	e := json.NewDecoder(r)
	return e.Decode(i)
}

func (i Input) Validate() error {
	if i.TimeZone != nil && i.AnchorAt == nil {
		return validation.Errors{"time_zone": errors.New("requires anchor_at")}
	}
	if len(i.RepeatDays) > 0 && i.RepeatType == nil {
		return validation.Errors{"repeat_days": errors.New("requires repeat_type")}
	}
	return validation.ValidateStruct(&i,
		validation.Field(&i.AnchorAt, validation.NilOrNotEmpty, validation.Length(0, 64)),
		validation.Field(&i.TimeZone, validation.Length(0, 64)),
		validation.Field(&i.RepeatType, validation.NilOrNotEmpty),
		validation.Field(&i.RepeatDays, validation.Length(0, 7)),
		validation.Field(&i.Note, validation.Length(0, reminder.MAX_NOTE_LEN)),
		validation.Field(&i.Medication, validation.Length(0, reminder.MAX_MEDICATION_LEN)),
	)
}

func (i Input) toServiceInput(reminderID reminder.ID) (input service.Input, err error) {
	input.ReminderID = reminderID
	if i.AnchorAt != nil {
		var timeZone string
		if i.TimeZone != nil {
			timeZone = *i.TimeZone
		}
		input.AnchorAt, err = reminder.ParseAnchor(*i.AnchorAt, timeZone)
		if err != nil {
			return input, err
		}
		input.DoAnchorAtUpdate = true
	}
	if i.RepeatType != nil {
		input.DoRecurrenceUpdate = true
		input.Recurrence = reminder.RecurrenceInput{Type: *i.RepeatType, Days: i.RepeatDays}
	}
	if i.DoNoteUpdate {
		input.DoNoteUpdate = true
		if i.Note != nil {
			input.Note = c.Some(*i.Note)
		}
	}
	if i.Medication != nil {
		input.DoMedicationUpdate = true
		input.Medication = *i.Medication
	}
	if i.DoPrescriptionUpdate {
		input.DoPrescriptionIDUpdate = true
		if i.PrescriptionID != nil {
			input.PrescriptionID = c.Some(prescription.ID(*i.PrescriptionID))
		}
	}
	return input, nil
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	rawReminderID := chi.URLParam(r, "reminderID")
	reminderID, err := strconv.ParseInt(rawReminderID, 10, 64)
	if err != nil {
		response.RenderError(rw, "invalid reminder ID", http.StatusBadRequest)
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
	serviceInput, err := input.toServiceInput(reminder.ID(reminderID))
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), serviceInput)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, reminder.ErrReminderDoesNotExist), errors.Is(err, prescription.ErrPrescriptionDoesNotExist):
			response.RenderError(rw, err.Error(), http.StatusNotFound)
		case errors.Is(err, reminder.ErrReminderPermission), errors.Is(err, prescription.ErrPrescriptionPermission):
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
	response.Render(rw, Result{Reminder: rem}, http.StatusOK)
}

func isExpectedError(err error) bool {
	return (errors.Is(err, reminder.ErrInvalidRecurrence) ||
		errors.Is(err, reminder.ErrInvalidAnchor) ||
		errors.Is(err, reminder.ErrPrescriptionMismatch))
}
