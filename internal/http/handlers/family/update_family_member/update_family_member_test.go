package updatefamilymember

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/update_family_member"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(handler http.Handler, url string, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Method(http.MethodPatch, "/family/{memberID}", handler)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPatch, url, strings.NewReader(body)))
	return rr
}

func TestUpdateFamilyMemberHandler(t *testing.T) {
	cases := []struct {
		id       string
		body     string
		expected service.Input
	}{
		{
			id:       "empty patch",
			body:     `{}`,
			expected: service.Input{MemberID: 5},
		},
		{
			id:   "name and relation",
			body: `{"name": "Anna", "relation": ""}`,
			expected: service.Input{
				MemberID:         5,
				DoNameUpdate:     true,
				Name:             "Anna",
				DoRelationUpdate: true,
				Relation:         "",
			},
		},
		{
			id:   "set gender and birth date",
			body: `{"do_gender_update": true, "gender": "male", "do_birth_date_update": true, "birth_date": "1950-01-31"}`,
			expected: service.Input{
				MemberID:          5,
				DoGenderUpdate:    true,
				Gender:            c.Some(family.GENDER_MALE),
				DoBirthDateUpdate: true,
				BirthDate:         c.Some(time.Date(1950, 1, 31, 0, 0, 0, 0, time.UTC)),
			},
		},
		{
			id:       "clear gender and birth date",
			body:     `{"do_gender_update": true, "do_birth_date_update": true}`,
			expected: service.Input{MemberID: 5, DoGenderUpdate: true, DoBirthDateUpdate: true},
		},
		{
			id:       "values without flags are ignored",
			body:     `{"gender": "male", "birth_date": "1950-01-31"}`,
			expected: service.Input{MemberID: 5},
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			var captured *service.Input
			handler := New(services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (service.Result, error) {
					captured = &input
					return service.Result{Member: family.Member{ID: input.MemberID, CreatedBy: 1, Name: "Anna"}}, nil
				},
			))

			rr := serve(handler, "/family/5", testcase.body)

			require.Equal(t, http.StatusOK, rr.Code)
			require.NotNil(t, captured)
			assert.Equal(t, testcase.expected, *captured)
		})
	}
}

func TestUpdateFamilyMemberHandlerErrors(t *testing.T) {
	cases := []struct {
		id             string
		url            string
		body           string
		err            error
		expectedStatus int
	}{
		{id: "invalid-member-id", url: "/family/me", body: `{}`, expectedStatus: http.StatusBadRequest},
		{id: "malformed", url: "/family/5", body: `{"name": `, expectedStatus: http.StatusBadRequest},
		{id: "empty-name", url: "/family/5", body: `{"name": ""}`, expectedStatus: http.StatusBadRequest},
		{id: "unknown-gender", url: "/family/5", body: `{"do_gender_update": true, "gender": "robot"}`, expectedStatus: http.StatusBadRequest},
		{id: "invalid-birth-date", url: "/family/5", body: `{"do_birth_date_update": true, "birth_date": "yesterday"}`, expectedStatus: http.StatusBadRequest},
		{id: "unauthenticated", url: "/family/5", body: `{}`, err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{id: "not-found", url: "/family/5", body: `{}`, err: family.ErrMemberDoesNotExist, expectedStatus: http.StatusNotFound},
		{id: "foreign", url: "/family/5", body: `{}`, err: family.ErrMemberPermission, expectedStatus: http.StatusForbidden},
		{id: "birth-date-in-future", url: "/family/5", body: `{}`, err: family.ErrBirthDateInFuture, expectedStatus: http.StatusUnprocessableEntity},
		{id: "gender-rejected", url: "/family/5", body: `{}`, err: family.ErrUnknownGender, expectedStatus: http.StatusUnprocessableEntity},
		{id: "internal", url: "/family/5", body: `{}`, err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			handler := New(services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (result service.Result, err error) {
					return result, testcase.err
				},
			))
			rr := serve(handler, testcase.url, testcase.body)
			assert.Equal(t, testcase.expectedStatus, rr.Code)
		})
	}
}
