// Package buildinfo holds the version stamped into gfak at build time.
//
// Variables are set via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/gfak/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/gfak/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/gfak/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/gfak
//
// Version also scopes cache keys, so outputs cached by one release are
// never served by another.
package buildinfo

import "fmt"

var (
	// Version is the release tag, or "dev" for local builds.
	Version = "dev"

	// Commit is the abbreviated git commit.
	Commit = "none"

	// Date is the UTC build time.
	Date = "unknown"
)

// String returns the build information on three lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", Version, Commit, Date)
}

// CachePrefix returns the prefix that scopes cache keys to this build.
func CachePrefix() string {
	return "gfak@" + Version + ":"
}
