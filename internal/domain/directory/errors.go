package directory

import "errors"

var (
	ErrNotFound                = errors.New("record not found")
	ErrDuplicateUsername       = errors.New("username already taken")
	ErrDuplicateEmployeeNumber = errors.New("employee number already in use")
	ErrRoleInUse               = errors.New("role is still assigned to users")
)
