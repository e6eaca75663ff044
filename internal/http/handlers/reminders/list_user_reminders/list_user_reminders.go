package listuserreminders

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/reminder"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/list_user_reminders"
	"medmate/internal/http/handlers/response"
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

type Result struct {
	Reminders  []response.Reminder `json:"reminders"`
	TotalCount uint                `json:"total_count"`
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	isActive, err := parseActive(query.Get("active"))
	if err != nil {
		response.RenderError(rw, "invalid active query parameter", http.StatusBadRequest)
		return
	}

	familyMemberID, err := parseFamilyMemberID(query.Get("family_member_id"))
	if err != nil {
		response.RenderError(rw, "invalid family_member_id query parameter", http.StatusBadRequest)
		return
	}

	orderBy, err := parseOrderBy(query.Get("order_by"))
	if err != nil {
		response.RenderError(rw, "invalid order_by query parameter", http.StatusBadRequest)
		return
	}

	limit, err := parseLimit(query.Get("limit"))
	if err != nil {
		response.RenderError(rw, "invalid limit query parameter", http.StatusBadRequest)
		return
	}

	offset, err := parseOffset(query.Get("offset"))
	if err != nil {
		response.RenderError(rw, "invalid offset query parameter", http.StatusBadRequest)
		return
	}

	input := service.Input{
		IsActiveEquals:       isActive,
		FamilyMemberIDEquals: familyMemberID,
		OrderBy:              orderBy,
		Limit:                limit,
		Offset:               offset,
	}
	result, err := h.service.Run(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserDoesNotExist):
			response.RenderUnauthorized(rw)
		default:
			response.RenderInternalError(rw)
		}
		return
	}

	response.Render(
		rw,
		Result{Reminders: response.RemindersFromDomain(result.Reminders), TotalCount: result.TotalCount},
		http.StatusOK,
	)
}

func parseActive(raw string) (isActive c.Optional[bool], err error) {
	if raw == "" {
		return isActive, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return isActive, err
	}
	return c.Some(v), nil
}

func parseFamilyMemberID(raw string) (memberID c.Optional[family.ID], err error) {
	if raw == "" {
		return memberID, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return memberID, err
	}
	return c.Some(family.ID(id)), nil
}

func parseOrderBy(raw string) (orderBy reminder.OrderBy, err error) {
	if raw == "" {
		return orderBy, nil
	}
	orderBy, err = reminder.ParseOrderBy(raw)
	return orderBy, err
}

func parseLimit(raw string) (limit c.Optional[uint], err error) {
	if raw == "" {
		return limit, nil
	}
	l, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return limit, err
	}
	if l > service.DEFAULT_LIMIT {
		return limit, fmt.Errorf("limit must be less than or equal to %v", service.DEFAULT_LIMIT)
	}
	limit.IsPresent = true
	limit.Value = uint(l)
	return limit, nil
}

func parseOffset(raw string) (offset uint, err error) {
	if raw == "" {
		return offset, nil
	}
	o, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return offset, err
	}
	return uint(o), nil
}
