package me

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	service "medmate/internal/core/services/get_user_by_session_token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeHandler(t *testing.T) {
	u := user.User{
		ID:        5,
		Email:     "john@example.com",
		Name:      "John",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	handler := New(services.ServiceFunc[service.Input, service.Result](
		func(ctx context.Context, input service.Input) (service.Result, error) {
			return service.Result{User: u}, nil
		},
	))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/profile/me", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		User struct {
			ID    int64  `json:"id"`
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	require.Nil(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, int64(5), body.User.ID)
	assert.Equal(t, "john@example.com", body.User.Email)
	assert.Equal(t, "John", body.User.Name)
	assert.NotContains(t, rr.Body.String(), "password")
}

func TestMeHandlerErrors(t *testing.T) {
	cases := []struct {
		err            error
		expectedStatus int
	}{
		{err: user.ErrUserDoesNotExist, expectedStatus: http.StatusUnauthorized},
		{err: errors.New("db is down"), expectedStatus: http.StatusInternalServerError},
	}

	for _, testcase := range cases {
		t.Run(testcase.err.Error(), func(t *testing.T) {
			handler := New(services.ServiceFunc[service.Input, service.Result](
				func(ctx context.Context, input service.Input) (result service.Result, err error) {
					return result, testcase.err
				},
			))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/profile/me", nil))
			assert.Equal(t, testcase.expectedStatus, rr.Code)
		})
	}
}
