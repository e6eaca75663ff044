package passwordhasher

import (
	"testing"

	"medmate/internal/core/domain/user"

	"github.com/stretchr/testify/require"
)

func TestPasswordValid(t *testing.T) {
	type test struct {
		id       string
		secret   string
		password string
	}
	cases := []test{
		{id: "plain", secret: "test", password: "test"},
		{id: "empty", secret: "", password: ""},
		{id: "spaces", secret: "   b   ", password: "   test   "},
		{id: "unicode", secret: "a", password: "пароль пароль"},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			assert := require.New(t)
			h := NewBcrypt(testcase.secret, 5)
			hash, err := h.HashPassword(user.RawPassword(testcase.password))
			assert.Nil(err)
			assert.NotEmpty(hash)
			assert.NotEqual(user.PasswordHash(testcase.password), hash)
			assert.True(h.ValidatePassword(user.RawPassword(testcase.password), hash))
		})
	}
}

func TestPasswordInvalid(t *testing.T) {
	type test struct {
		id              string
		secretToHash    string
		secretToCheck   string
		passwordToHash  string
		passwordToCheck string
	}
	cases := []test{
		{id: "trailing space", secretToHash: "s", secretToCheck: "s", passwordToHash: "test", passwordToCheck: "test "},
		{id: "other secret", secretToHash: "s", secretToCheck: "s ", passwordToHash: "test", passwordToCheck: "test"},
		{id: "empty vs space", secretToHash: "", secretToCheck: "", passwordToHash: "", passwordToCheck: " "},
		{id: "typo", secretToHash: "b", secretToCheck: "b", passwordToHash: "secret", passwordToCheck: "secrat"},
	}
	for _, testcase := range cases {
		t.Run(testcase.id, func(t *testing.T) {
			assert := require.New(t)
			hash, err := NewBcrypt(testcase.secretToHash, 5).HashPassword(user.RawPassword(testcase.passwordToHash))
			assert.Nil(err)

			h := NewBcrypt(testcase.secretToCheck, 5)
			assert.False(h.ValidatePassword(user.RawPassword(testcase.passwordToCheck), hash))
		})
	}
}

func TestInvalidCostPanics(t *testing.T) {
	require.Panics(t, func() { NewBcrypt("s", 1) })
}
