package version

import (
	"runtime"
	"strings"
)

// Build stamp, set with -ldflags -X.
var (
	Version   = "0.5.0"
	Commit    = "none"
	BuildTime = "unknown"
)

// Short is the bare version number.
func Short() string {
	return Version
}

// Full is the one-line build description printed by `logvisor version`:
// version, then whatever of commit and build time is known, then the Go
// toolchain the binary was built with.
func Full() string {
	var sb strings.Builder
	sb.WriteString("logvisor ")
	sb.WriteString(Version)
	if Commit != "" && Commit != "none" {
		sb.WriteString(" (" + Commit + ")")
	}
	if BuildTime != "" && BuildTime != "unknown" {
		sb.WriteString(" built " + BuildTime)
	}
	sb.WriteString(" " + runtime.Version())
	return sb.String()
}
