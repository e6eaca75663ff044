package listoccurrences

import (
	"errors"
	"net/http"
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/list_occurrences"
	"medmate/internal/http/handlers/response"
)

const DATE_LAYOUT = "2006-01-02"

var errMissingWindow = errors.New("either date or both from and to are required")

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
	From        time.Time             `json:"from"`
	To          time.Time             `json:"to"`
	Occurrences []response.Occurrence `json:"occurrences"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	input, err := parseWindow(r)
	if err != nil {
		response.RenderError(rw, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		case errors.Is(err, reminder.ErrInvalidOccurrenceWindow):
			response.RenderError(rw, err.Error(), http.StatusUnprocessableEntity)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	occurrences := make([]response.Occurrence, 0, len(result.Occurrences))
	for _, o := range result.Occurrences {
		occurrence := response.Occurrence{}
		occurrence.FromDomainType(o.Occurrence, o.IsAcknowledged)
		occurrences = append(occurrences, occurrence)
	}
	response.Render(rw, Result{From: result.From, To: result.To, Occurrences: occurrences}, http.StatusOK)
}

// parseWindow reads either ?date=&time_zone= or ?from=&to= (RFC 3339).
func parseWindow(r *http.Request) (input service.Input, err error) {
	query := r.URL.Query()

	if rawDate := query.Get("date"); rawDate != "" {
		location := time.UTC
		if rawZone := query.Get("time_zone"); rawZone != "" {
			location, err = reminder.DecodeZone(rawZone)
			if err != nil {
				return input, err
			}
		}
		day, err := time.ParseInLocation(DATE_LAYOUT, rawDate, location)
		if err != nil {
			return input, errors.New("invalid date query parameter")
		}
		input.Day = c.Some(day)
		return input, nil
	}

	rawFrom, rawTo := query.Get("from"), query.Get("to")
	if rawFrom == "" || rawTo == "" {
		return input, errMissingWindow
	}
	input.From, err = time.Parse(time.RFC3339, rawFrom)
	if err != nil {
		return input, errors.New("invalid from query parameter")
	}
	input.To, err = time.Parse(time.RFC3339, rawTo)
	if err != nil {
		return input, errors.New("invalid to query parameter")
	}
	return input, nil
}
