package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agbru/ratcount/internal/rationals"
)

// ColorProvider supplies terminal color codes. It keeps this package free of
// a dependency on the cli package.
type ColorProvider interface {
	Yellow() string
	Reset() string
}

// DefaultColorProvider provides no color codes.
type DefaultColorProvider struct{}

func (d DefaultColorProvider) Yellow() string { return "" }
func (d DefaultColorProvider) Reset() string  { return "" }

// HandleCountError prints a status line for a failed count and returns the
// matching exit code. A nil error yields ExitSuccess and prints nothing.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: Time spent before the failure; omitted from the message when zero.
//   - out: Destination of the status line.
//   - colors: Color provider, may be nil.
func HandleCountError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration, colors.Reset())
	}

	if IsContextError(err) {
		if errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(out, "Status: Failure (Timeout). The execution limit was reached%s.\n", msgSuffix)
			return ExitErrorTimeout
		}
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
		return ExitErrorCanceled
	}
	if errors.Is(err, rationals.ErrInvalidArgument) {
		fmt.Fprintf(out, "Status: Rejected. %v\n", err)
		return ExitErrorConfig
	}
	fmt.Fprintf(out, "Status: Failure. An unexpected error occurred: %v\n", err)
	return ExitErrorGeneric
}
