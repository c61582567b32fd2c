package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for response-analysis operations.
var (
	// ErrInvalidArgument indicates a violated precondition. No output is produced.
	ErrInvalidArgument = errors.New("dynamo: invalid argument")

	// ErrEmptyRange indicates a spectrum period range that is not strictly
	// positive and increasing. Sweeps return an empty spectrum alongside it.
	ErrEmptyRange = fmt.Errorf("%w: period range must satisfy 0 < low < high", ErrInvalidArgument)

	// ErrNumericalDegeneracy indicates NaN or Inf in a computed history.
	// Integrators never return it; callers may check with [Result.IsFinite].
	ErrNumericalDegeneracy = errors.New("dynamo: non-finite value in response history")
)

// ArgumentError names the parameter that failed validation.
type ArgumentError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("dynamo: invalid argument %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalid(field string, value any, reason string) error {
	return &ArgumentError{Field: field, Value: value, Reason: reason}
}

// DegeneracyError reports the first non-finite sample of a history.
type DegeneracyError struct {
	Channel Channel
	Step    int
	Value   float64
}

func (e *DegeneracyError) Error() string {
	return fmt.Sprintf("step %d: %s is %v", e.Step, e.Channel, e.Value)
}

func (e *DegeneracyError) Unwrap() error {
	return ErrNumericalDegeneracy
}
