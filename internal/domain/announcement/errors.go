package announcement

import "errors"

var ErrNotFound = errors.New("announcement not found")
