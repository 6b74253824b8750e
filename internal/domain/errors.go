// Package domain holds the errors the event and nudge packages share.
package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidID = errors.New("invalid id")

// ValidationError reports one field whose value could not be accepted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
