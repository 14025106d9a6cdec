package chat

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("chat session not found")
	ErrUpstream    = errors.New("upstream model failure")
	ErrPersistence = errors.New("persistence failure")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &validationError{msg: msg}
}

func upstream(err error, msg string) error {
	return eris.Wrap(fmt.Errorf("%w: %w", ErrUpstream, err), msg)
}

func persistence(err error, msg string) error {
	return eris.Wrap(fmt.Errorf("%w: %w", ErrPersistence, err), msg)
}

// ErrorMessage returns the user-facing text for a validation error.
func ErrorMessage(err error) string {
	var v *validationError
	if errors.As(err, &v) {
		return v.msg
	}
	return err.Error()
}
