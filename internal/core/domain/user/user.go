package user

import (
	"time"

	c "medmate/internal/core/domain/common"
	e "medmate/internal/core/domain/errors"
)

type ID int64

type PasswordHash string

func (p PasswordHash) String() string {
	return "***"
}

type RawPassword string

func (p RawPassword) String() string {
	return "***"
}

type SessionToken string

func (t SessionToken) String() string {
	return "***"
}

const (
	MIN_PASSWORD_LEN = 6
	MAX_PASSWORD_LEN = 256
	MAX_NAME_LEN     = 128
)

type User struct {
	ID           ID
	Email        c.Email
	Name         string
	PasswordHash PasswordHash
	CreatedAt    time.Time
}

func (u *User) Validate() error {
	if u.Email == "" {
		return e.NewInvalidStateErrorf("email is not set for user %d", u.ID)
	}
	if u.PasswordHash == "" {
		return e.NewInvalidStateErrorf("password hash is not set for user %d", u.ID)
	}
	return nil
}

type PasswordHasher interface {
	HashPassword(password RawPassword) (PasswordHash, error)
	ValidatePassword(password RawPassword, hash PasswordHash) bool
}

type SessionTokenGenerator interface {
	GenerateSessionToken() SessionToken
}
