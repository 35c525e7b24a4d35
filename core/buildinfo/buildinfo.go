// Package buildinfo holds the release identity stamped in by the linker:
//
//	go build -ldflags "-X github.com/m3rciful/sneakerbot/core/buildinfo.Version=v0.3.0 \
//	  -X github.com/m3rciful/sneakerbot/core/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/m3rciful/sneakerbot/core/buildinfo.Date=$(date -u +%FT%TZ)"
package buildinfo

import (
	"cmp"
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "local"
	// Date is RFC3339; empty for local builds.
	Date = ""
)

// String renders the build identity for the version command.
func String() string {
	return fmt.Sprintf("sneakerbot %s (commit %s, built %s)", Version, revision(), cmp.Or(Date, "unknown"))
}

// revision prefers the linker-stamped commit and falls back to the VCS
// revision the go tool embeds in module builds.
func revision() string {
	if Commit != "local" {
		return Commit
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				return s.Value[:7]
			}
		}
	}
	return Commit
}
