package createfamilymember

import (
	"context"
	"encoding/json"
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
	service "medmate/internal/core/services/create_family_member"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(handler http.Handler, body string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/family", strings.NewReader(body)))
	return rr
}

func TestCreateFamilyMemberHandler(t *testing.T) {
	cases := []struct {
		id       string
		body     string
		expected service.Input
	}{
		{
			id:       "name only",
			body:     `{"name": "Anna"}`,
			expected: service.Input{Name: "Anna"},
		},
		{
			id:   "all fields",
			body: `{"name": "Anna", "relation": "daughter", "gender": "female", "birth_date": "2015-06-01"}`,
			expected: service.Input{
				Name:      "Anna",
				Relation:  "daughter",
				Gender:    c.Some(family.GENDER_FEMALE),
				BirthDate: c.Some(time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)),
			},
		},
		{
			id:       "explicit nulls",
			body:     `{"name": "Bob", "gender": null, "birth_date": null}`,
			expected: service.Input{Name: "Bob"},
		},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			var captured *service.Input
			handler := New(services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (service.Result, error) {
					captured = &input
					return service.Result{Member: family.Member{
						ID:        2,
						CreatedBy: 1,
						Name:      input.Name,
						Relation:  input.Relation,
						Gender:    input.Gender,
						BirthDate: input.BirthDate,
					}}, nil
				},
			))

			rr := post(handler, testcase.body)

			require.Equal(t, http.StatusCreated, rr.Code)
			require.NotNil(t, captured)
			assert.Equal(t, testcase.expected, *captured)
		})
	}
}

func TestCreateFamilyMemberHandlerRendersMember(t *testing.T) {
	handler := New(services.ServiceFunc[service.Input, service.Result](
		func(ctx context.Context, input service.Input) (service.Result, error) {
			return service.Result{Member: family.Member{
				ID:        2,
				CreatedBy: 1,
				Name:      input.Name,
				Gender:    input.Gender,
				BirthDate: input.BirthDate,
			}}, nil
		},
	))

	rr := post(handler, `{"name": "Anna", "gender": "other", "birth_date": "2015-06-01"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	var res struct {
		Member struct {
			ID        int64   `json:"id"`
			Name      string  `json:"name"`
			Gender    *string `json:"gender"`
			BirthDate *string `json:"birth_date"`
		} `json:"member"`
	}
	require.Nil(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, int64(2), res.Member.ID)
	assert.Equal(t, "Anna", res.Member.Name)
	require.NotNil(t, res.Member.Gender)
	assert.Equal(t, "other", *res.Member.Gender)
	require.NotNil(t, res.Member.BirthDate)
	assert.Equal(t, "2015-06-01", *res.Member.BirthDate)
}

func TestCreateFamilyMemberHandlerErrors(t *testing.T) {
	const BODY = `{"name": "Anna", "birth_date": "2015-06-01"}`

	cases := []struct {
		id             string
		body           string
		err            error
		expectedStatus int
	}{
		{id: "malformed", body: `{"name": `, expectedStatus: http.StatusBadRequest},
		{id: "no-name", body: `{"relation": "son"}`, expectedStatus: http.StatusBadRequest},
		{id: "long-name", body: `{"name": "` + strings.Repeat("a", family.MAX_NAME_LEN+1) + `"}`, expectedStatus: http.StatusBadRequest},
		{id: "long-relation", body: `{"name": "Anna", "relation": "` + strings.Repeat("a", family.MAX_RELATION_LEN+1) + `"}`, expectedStatus: http.StatusBadRequest},
		{id: "unknown-gender", body: `{"name": "Anna", "gender": "robot"}`, expectedStatus: http.StatusBadRequest},
		{id: "capitalized-gender", body: `{"name": "Anna", "gender": "Female"}`, expectedStatus: http.StatusBadRequest},
		{id: "invalid-birth-date", body: `{"name": "Anna", "birth_date": "01.06.2015"}`, expectedStatus: http.StatusBadRequest},
		{id: "unauthenticated", body: BODY, err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{id: "birth-date-in-future", body: BODY, err: family.ErrBirthDateInFuture, expectedStatus: http.StatusUnprocessableEntity},
		{id: "gender-rejected", body: BODY, err: family.ErrUnknownGender, expectedStatus: http.StatusUnprocessableEntity},
		{id: "internal", body: BODY, err: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			handler := New(services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (result service.Result, err error) {
					return result, testcase.err
				},
			))
			rr := post(handler, testcase.body)
			assert.Equal(t, testcase.expectedStatus, rr.Code)
		})
	}
}
