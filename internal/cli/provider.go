package cli

import (
	apperrors "github.com/agbru/ratcount/internal/errors"
	"github.com/agbru/ratcount/internal/ui"
)

var _ apperrors.ColorProvider = CLIColorProvider{}

// CLIColorProvider implements apperrors.ColorProvider with the current CLI
// theme. Exported for the orchestration package.
type CLIColorProvider struct{}

// Yellow returns the warning color of the current theme.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the reset escape code of the current theme.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }
