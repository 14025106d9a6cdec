package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrUpstream    = errors.New("upstream model failure")
	ErrPersistence = errors.New("persistence failure")
)

// ValidationError maps field names to what is wrong with them.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range fieldNames(e.Fields) {
		parts = append(parts, name+" "+e.Fields[name])
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func upstream(err error, msg string) error {
	return eris.Wrap(fmt.Errorf("%w: %w", ErrUpstream, err), msg)
}

func persistence(err error, msg string) error {
	return eris.Wrap(fmt.Errorf("%w: %w", ErrPersistence, err), msg)
}
