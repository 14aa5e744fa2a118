package catalog

import "errors"

var (
	ErrNotFound = errors.New("catalog entry not found")
	ErrInUse    = errors.New("catalog entry is referenced by payroll sheets")
)
