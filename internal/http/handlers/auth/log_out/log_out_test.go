package logout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"medmate/internal/core/domain/user"
	"medmate/internal/core/services"
	logout "medmate/internal/core/services/log_out"

	"github.com/stretchr/testify/assert"
)

func TestLogOutHandler(t *testing.T) {
	cases := []struct {
		id             string
		header         string
		err            error
		expectedStatus int
		expectedToken  user.SessionToken
	}{
		{id: "success", header: "Bearer abc", expectedStatus: http.StatusNoContent, expectedToken: "abc"},
		{id: "no-header", expectedStatus: http.StatusUnauthorized},
		{id: "unknown-session", header: "Bearer abc", err: user.ErrSessionDoesNotExist, expectedStatus: http.StatusUnauthorized, expectedToken: "abc"},
	}

	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			var token user.SessionToken
			handler := New(services.ServiceFunc[logout.Input, logout.Result](
				func(ctx context.Context, input logout.Input) (result logout.Result, err error) {
					token = input.Token
					return result, testcase.err
				},
			))

			req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
			if testcase.header != "" {
				req.Header.Set("Authorization", testcase.header)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, testcase.expectedStatus, rr.Code)
			assert.Equal(t, testcase.expectedToken, token)
		})
	}
}
