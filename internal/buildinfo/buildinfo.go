// Package buildinfo exposes link-time build metadata of the floor-plan binaries.
package buildinfo

import (
	"fmt"
	"time"
)

// Set via -ldflags at build time
var (
	Version    = "dev"
	BuildTime  string // when the binary was compiled
	CommitHash string // short git commit hash
)

// StartTime is recorded when the process starts
var StartTime = time.Now().UTC().Format(time.RFC3339)

// String renders a one-line version banner.
func String() string {
	s := Version
	if CommitHash != "" {
		s += " (" + CommitHash + ")"
	}
	if BuildTime != "" {
		s += fmt.Sprintf(" built %s", BuildTime)
	}
	return s
}
