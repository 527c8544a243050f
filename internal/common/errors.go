package common

import "errors"

var (
	// ErrAuthRequired is returned when an action needs a session token and
	// none is present. The caller is expected to prompt for authentication.
	ErrAuthRequired = errors.New("authentication required")

	// ErrBusy is returned when an operation is already in flight.
	ErrBusy = errors.New("operation in progress")
)
