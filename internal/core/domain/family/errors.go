package family

import "errors"

var (
	ErrMemberDoesNotExist = errors.New("family member does not exist")
	ErrMemberPermission   = errors.New("family member belongs to another user")
	ErrBirthDateInFuture  = errors.New("birth date must not be in the future")
	ErrUnknownGender      = errors.New("unknown gender")
)
