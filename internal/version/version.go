// Package version holds build metadata injected at link time via
// -ldflags "-X github.com/keyclick/keyclick/internal/version.Version=...".
package version

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
