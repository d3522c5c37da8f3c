package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/agbru/ratcount/internal/rationals"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	cases := map[string]struct {
		err  error
		want string
	}{
		"config":              {NewConfigError("trials must be at least %d", 1), "trials must be at least 1"},
		"count with algo":     {NewCountError("Incremental Sieve", errors.New("boom")), "Incremental Sieve: boom"},
		"count without algo":  {NewCountError("", errors.New("boom")), "boom"},
		"server with cause":   {NewServerError("listen", errors.New("address in use")), "listen: address in use"},
		"server without":      {NewServerError("stopped", nil), "stopped"},
		"validation on field": {NewValidationError("n", "must be an integer", "x"), "validation error for 'n': must be an integer"},
		"validation no field": {ValidationError{Message: "empty"}, "validation error: empty"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewCountErrorNilCause(t *testing.T) {
	t.Parallel()
	if err := NewCountError("Brute Force", nil); err != nil {
		t.Errorf("NewCountError(nil) = %v, want nil", err)
	}
}

func TestUnwrapChains(t *testing.T) {
	t.Parallel()

	invalid := NewCountError("Brute Force", &rationals.InvalidArgumentError{N: -2})
	if !errors.Is(invalid, rationals.ErrInvalidArgument) {
		t.Error("CountError must expose ErrInvalidArgument")
	}
	var countErr CountError
	if !errors.As(invalid, &countErr) || countErr.Algorithm != "Brute Force" {
		t.Errorf("errors.As(CountError) failed: %+v", countErr)
	}

	cause := errors.New("bind failed")
	if !errors.Is(NewServerError("start", cause), cause) {
		t.Error("ServerError must unwrap to its cause")
	}
	if (ServerError{Message: "x"}).Unwrap() != nil {
		t.Error("ServerError without cause must unwrap to nil")
	}

	var ve ValidationError
	wrapped := fmt.Errorf("parse query: %w", NewValidationError("n", "missing", ""))
	if !errors.As(wrapped, &ve) || ve.Field != "n" || ve.Message != "missing" {
		t.Errorf("errors.As(ValidationError) = %+v", ve)
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("other"), false},
		{context.Canceled, true},
		{context.DeadlineExceeded, true},
		{NewCountError("Incremental Sieve", context.DeadlineExceeded), true},
		{&rationals.InvalidArgumentError{N: -1}, false},
	}
	for _, tc := range cases {
		if got := IsContextError(tc.err); got != tc.want {
			t.Errorf("IsContextError(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}

func TestExitCodesAreDistinct(t *testing.T) {
	t.Parallel()
	seen := map[int]string{}
	for name, code := range map[string]int{
		"success": ExitSuccess, "generic": ExitErrorGeneric, "timeout": ExitErrorTimeout,
		"mismatch": ExitErrorMismatch, "config": ExitErrorConfig, "canceled": ExitErrorCanceled,
	} {
		if other, dup := seen[code]; dup {
			t.Errorf("exit code %d shared by %s and %s", code, name, other)
		}
		seen[code] = name
	}
	if ExitSuccess != 0 || ExitErrorCanceled != 130 {
		t.Error("success must be 0 and cancellation 130")
	}
}
