// Package buildinfo holds version metadata stamped in at build time.
package buildinfo

// Set via -ldflags "-X github.com/xjtian/monarch-sankeymatic/internal/buildinfo.Version=..." etc.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
