package analysis

import (
	"errors"
	"fmt"

	"github.com/rotisserie/eris"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrUpstream    = errors.New("upstream model failure")
	ErrPersistence = errors.New("persistence failure")
)

// validationError keeps the user-facing message apart from the sentinel.
type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error {
	return &validationError{msg: msg}
}

// upstream and persistence keep both the sentinel and the cause reachable
// through errors.Is.
func upstream(err error, msg string) error {
	return eris.Wrap(fmt.Errorf("%w: %w", ErrUpstream, err), msg)
}

func persistence(err error, msg string) error {
	return eris.Wrap(fmt.Errorf("%w: %w", ErrPersistence, err), msg)
}

// Message returns the user-facing text for a validation error.
func Message(err error) string {
	var v *validationError
	if errors.As(err, &v) {
		return v.msg
	}
	return err.Error()
}
