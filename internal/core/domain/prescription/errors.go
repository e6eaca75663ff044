package prescription

import "errors"

var (
	ErrPrescriptionDoesNotExist = errors.New("prescription does not exist")
	ErrPrescriptionPermission   = errors.New("prescription belongs to another user")
)
