package rationals

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the sentinel matched by errors.Is for every rejected
// denominator bound.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError reports a negative denominator bound.
type InvalidArgumentError struct {
	N int64
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: denominator bound must be non-negative, got %d", e.N)
}

// Unwrap lets errors.Is match ErrInvalidArgument.
func (e *InvalidArgumentError) Unwrap() error { return ErrInvalidArgument }

func validateBound(n int64) error {
	if n < 0 {
		return &InvalidArgumentError{N: n}
	}
	return nil
}
