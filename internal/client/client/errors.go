package client

import (
	"errors"
	"fmt"
)

const (
	msgServerGeneric  = "An error occurred"
	msgNetwork        = "No response from server. Please check your internet connection."
	msgUnexpected     = "An unexpected error occurred"
	msgSessionExpired = "Your session has expired. Please log in again."
)

// ServerError means the backend answered with a non-2xx status.
// Message is the server-supplied "message" field, or a generic text.
type ServerError struct {
	Status  int
	Message string
	Err     error
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

func (e *ServerError) Unwrap() error { return e.Err }

func (e *ServerError) UserMessage() string { return e.Message }

// SessionExpiredError means the backend answered 401. By the time it is
// returned the session has been cleared and the UI redirected.
type SessionExpiredError struct {
	Message string
}

func (e *SessionExpiredError) Error() string {
	return "session expired: " + e.Message
}

func (e *SessionExpiredError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return msgSessionExpired
}

// NetworkError means the request was sent but no response arrived.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) UserMessage() string { return msgNetwork }

// RequestSetupError means the request could not be built or dispatched.
type RequestSetupError struct {
	Err error
}

func (e *RequestSetupError) Error() string {
	return fmt.Sprintf("request setup: %v", e.Err)
}

func (e *RequestSetupError) Unwrap() error { return e.Err }

func (e *RequestSetupError) UserMessage() string { return msgUnexpected }

type userFacing interface {
	UserMessage() string
}

// UserMessage returns the text to show the user for err. Errors that do not
// carry their own user-facing text fall back to err.Error().
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var uf userFacing
	if errors.As(err, &uf) {
		return uf.UserMessage()
	}
	return err.Error()
}

// MessageOr is UserMessage with a caller-chosen fallback for failures that
// carry nothing specific: a server error without a "message" field, or an
// error outside the taxonomy.
func MessageOr(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var se *ServerError
	if errors.As(err, &se) {
		if se.Message == "" || se.Message == msgServerGeneric {
			return fallback
		}
		return se.Message
	}
	var uf userFacing
	if errors.As(err, &uf) {
		return uf.UserMessage()
	}
	return fallback
}
