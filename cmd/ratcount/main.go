// Command ratcount counts the reduced fractions in [0,1] whose denominator
// does not exceed a bound, compares counting algorithms and serves counts
// over HTTP.
package main

import (
	"context"
	"os"

	"github.com/agbru/ratcount/internal/app"
	apperrors "github.com/agbru/ratcount/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		if err := app.PrintVersion(os.Stdout, os.Args[1:]); err != nil {
			os.Exit(apperrors.ExitErrorGeneric)
		}
		os.Exit(apperrors.ExitSuccess)
	}

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		os.Exit(apperrors.ExitErrorConfig)
	}

	os.Exit(application.Run(context.Background(), os.Stdout))
}
