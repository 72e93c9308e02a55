package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrReadOnlyProperty = errors.New("cannot set read-only property")
	// ErrIndexMismatch wraps ErrInvalidArgument.
	ErrIndexMismatch = fmt.Errorf("%w: the index and id of the item must be the same", ErrInvalidArgument)
)
