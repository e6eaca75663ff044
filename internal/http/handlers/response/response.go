package response

import (
	"encoding/json"
	"net/http"
)

const (
	CONTENT_TYPE_JSON     = "application/json"
	CONTENT_TYPE_CALENDAR = "text/calendar; charset=utf-8"
)

type errorResponse struct {
	Error string `json:"error"`
}

func RenderUnauthorized(rw http.ResponseWriter) {
	RenderError(rw, "invalid authentication token", http.StatusUnauthorized)
}

func RenderInternalError(rw http.ResponseWriter) {
	RenderError(rw, "internal error", http.StatusInternalServerError)
}

func RenderRateLimitExceeded(rw http.ResponseWriter) {
	RenderError(rw, "rate limit exceeded", http.StatusTooManyRequests)
}

// RenderValidationError renders ozzo validation errors keyed by field name.
func RenderValidationError(rw http.ResponseWriter, err error) {
	Render(rw, err, http.StatusBadRequest)
}

func RenderError(rw http.ResponseWriter, msg string, status int) {
	Render(rw, errorResponse{Error: msg}, status)
}

func RenderNoContent(rw http.ResponseWriter) {
	rw.WriteHeader(http.StatusNoContent)
}

func RenderCalendar(rw http.ResponseWriter, filename string, calendar []byte) {
	rw.Header().Set("Content-Type", CONTENT_TYPE_CALENDAR)
	rw.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	rw.WriteHeader(http.StatusOK)
	rw.Write(calendar)
}

func Render(rw http.ResponseWriter, res interface{}, status int) {
	rw.Header().Set("Content-Type", CONTENT_TYPE_JSON)

	content, err := json.Marshal(res)
	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		return
	}

	rw.WriteHeader(status)
	rw.Write(content)
}
