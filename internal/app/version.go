// Package app wires configuration, counters and output modes into the
// ratcount command.
package app

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"slices"
)

// Build metadata, injected with
//
//	-ldflags "-X github.com/agbru/ratcount/internal/app.Version=v1.0.0 -X ...Commit=abc123 -X ...BuildDate=2026-01-01"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// VersionData is the build and runtime description printed by -version.
type VersionData struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// GetVersionInfo snapshots the build metadata and the running toolchain.
func GetVersionInfo() VersionData {
	return VersionData{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// HasVersionFlag reports whether args request version output. It is checked
// before flag parsing so -version works next to any other flag.
func HasVersionFlag(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "--version" || a == "-version" || a == "-V"
	})
}

// hasJSONFlag reports whether args ask for JSON output.
func hasJSONFlag(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "-json" || a == "--json" || a == "-json=true" || a == "--json=true"
	})
}

// PrintVersion writes the version block, or a JSON object when args also
// carry -json.
func PrintVersion(out io.Writer, args []string) error {
	info := GetVersionInfo()
	if hasJSONFlag(args) {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	_, err := fmt.Fprintf(out, "ratcount %s\n  commit   %s\n  built    %s\n  go       %s\n  platform %s/%s\n",
		info.Version, info.Commit, info.BuildDate, info.GoVersion, info.OS, info.Arch)
	return err
}
