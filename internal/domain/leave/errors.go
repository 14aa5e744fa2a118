package leave

import "errors"

var (
	ErrNotFound       = errors.New("leave request not found")
	ErrAlreadyDecided = errors.New("leave request already decided")
	ErrInvalidRange   = errors.New("leave end date before start date")
	ErrInvalidKind    = errors.New("unknown leave kind")
)
