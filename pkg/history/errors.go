package history

import "errors"

var (
	// ErrInvalidWindow is returned when the window end is not after its start
	ErrInvalidWindow = errors.New("window end must be after window start")

	// ErrDuplicateInstance is returned when an instance ID is registered twice
	ErrDuplicateInstance = errors.New("duplicate instance")

	// ErrAlreadyBuilt is returned when a builder is used after Build
	ErrAlreadyBuilt = errors.New("history already built")

	// ErrOutOfWindow is returned when an observation falls outside the window
	ErrOutOfWindow = errors.New("observation outside analysis window")
)
