// Package buildinfo exposes the version identity stamped into the binary.
//
// Release builds inject the values via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/kvmesh-go/internal/infra/buildinfo.Version=v1.0.0"
//
// Plain `go build` binaries fall back to the VCS metadata the toolchain
// embeds, so --version still reports a usable revision.
package buildinfo

import "runtime/debug"

// Stamped via ldflags.
var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit hash.
	Commit = "unknown"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Info is a snapshot of the build identity.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
}

// Get returns the build identity, preferring ldflags values and filling
// gaps from the toolchain's embedded VCS settings.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
	}
	if info.Commit != "unknown" && info.BuildTime != "unknown" {
		return info
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "unknown" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// String renders the build identity for --version output.
func String() string {
	i := Get()
	return i.Version + " (" + i.Commit + ") built at " + i.BuildTime
}
