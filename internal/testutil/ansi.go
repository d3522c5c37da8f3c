// Package testutil holds helpers shared by the CLI-facing tests.
package testutil

import "regexp"

// ansiRegex matches CSI escape sequences (ESC [ params letter).
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// StripAnsiCodes removes terminal color codes so output can be compared as
// plain text.
func StripAnsiCodes(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}
