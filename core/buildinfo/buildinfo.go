// Package buildinfo carries the release metadata stamped into the binary:
//
//	go build -ldflags "-X github.com/m3rciful/cryptobot/core/buildinfo.Version=v0.3.0 \
//	  -X github.com/m3rciful/cryptobot/core/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/m3rciful/cryptobot/core/buildinfo.Date=$(date -u +%FT%TZ)"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "local"
	// Date is an RFC3339 timestamp, empty for local builds.
	Date = ""
)

// Summary renders the metadata as one line, e.g. "v0.3.0 (commit 1a2b3c4, built 2026-01-02T03:04:05Z)".
func Summary() string {
	if Date == "" {
		return fmt.Sprintf("%s (commit %s)", Version, Commit)
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, Date)
}
