// Package version exposes build-time version information.
package version

import "fmt"

// Set at build time via -ldflags.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// String formats the version line printed by the CLIs.
func String() string {
	return fmt.Sprintf("floornav %s (%s, built %s)", Version, GitCommit, BuildTime)
}
