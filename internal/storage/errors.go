package storage

import (
	"errors"
	"fmt"
)

// ErrNoFile is returned when a bill submission references no uploaded
// attachment.
var ErrNoFile = errors.New("bill has no uploaded receipt")

// StatusError is a store rejection derived from an HTTP status. Its
// message deliberately carries the status code ("Erreur 404",
// "Erreur 500") because views surface the message verbatim and match
// on its content.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Erreur %d", e.Code)
}

// NewStatusError builds the store error for an HTTP status code.
func NewStatusError(code int) *StatusError {
	return &StatusError{Code: code}
}

// IsNotFound reports whether err is a 404-class store rejection.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == 404
}

// IsServerError reports whether err is a 5xx-class store rejection.
func IsServerError(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code >= 500
}
