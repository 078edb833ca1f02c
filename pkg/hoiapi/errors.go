package hoiapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrSessionExpired is returned when the upstream no longer accepts the caller's
// session. Callers send the user to the login view instead of showing an error.
var ErrSessionExpired = errors.New("hoiapi: session expired")

// TransportError covers network failures and non-success responses without a
// recognised body.
type TransportError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("HTTP error! Status: %d", e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ActionRejectedError means the upstream answered but refused the action. Message
// is shown to the user verbatim.
type ActionRejectedError struct {
	Op         string
	StatusCode int
	Status     string
	Message    string
}

func (e *ActionRejectedError) Error() string {
	return e.Message
}

// IsSessionExpired reports whether err signals an expired upstream session.
func IsSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// IsRejected reports whether err is an ActionRejectedError and returns it.
func IsRejected(err error) (*ActionRejectedError, bool) {
	var rejected *ActionRejectedError
	if errors.As(err, &rejected) {
		return rejected, true
	}
	return nil, false
}

func mentionsSessionExpiry(message string) bool {
	lower := strings.ToLower(message)
	return strings.Contains(lower, "session expired") || strings.Contains(lower, "session has expired")
}

func sessionExpired(op string, status int, message string) error {
	if message == "" {
		message = "Your session has expired. Please log in again."
	}
	return &TransportError{Op: op, StatusCode: status, Message: message, Err: ErrSessionExpired}
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
