package auth

import (
	"net/http"
	"strings"

	"medmate/internal/core/domain/user"
	"medmate/internal/core/services/auth"

	"github.com/go-chi/chi/v5"
)

const (
	AUTH_TOKEN_PREFIX  = "Bearer "
	AUTH_TOKEN_MAX_LEN = 1024

	STREAM_TOKEN_URL_PARAM   = "sessionToken"
	STREAM_TOKEN_QUERY_PARAM = "token"
)

func ParseToken(r *http.Request) (token user.SessionToken, ok bool) {
	header := r.Header.Get("authorization")
	if header == "" {
		return token, false
	}
	raw, found := strings.CutPrefix(header, AUTH_TOKEN_PREFIX)
	if !found {
		return token, false
	}
	return checkToken(raw)
}

// ParseStreamToken reads the token of an EventSource request, which cannot
// carry an authorization header.
func ParseStreamToken(r *http.Request) (token user.SessionToken, ok bool) {
	raw := chi.URLParam(r, STREAM_TOKEN_URL_PARAM)
	if raw == "" {
		raw = r.URL.Query().Get(STREAM_TOKEN_QUERY_PARAM)
	}
	return checkToken(raw)
}

func checkToken(raw string) (token user.SessionToken, ok bool) {
	if raw == "" || len(raw) > AUTH_TOKEN_MAX_LEN {
		return token, false
	}
	return user.SessionToken(raw), true
}

func SetAuthTokenToContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := ParseToken(r); ok {
			r = r.WithContext(auth.WithAuthToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}
