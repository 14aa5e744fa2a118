package training

import "errors"

var (
	ErrNotFound        = errors.New("training not found")
	ErrAlreadyEnrolled = errors.New("employee already enrolled")
	ErrInvalidStatus   = errors.New("unknown enrollment status")
)
