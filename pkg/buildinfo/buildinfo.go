package buildinfo

import "runtime"

// These vars are set at build time via ldflags:
// -X github.com/rhymebook/rhymebook-cli/pkg/buildinfo.Version=v0.3.1
// -X github.com/rhymebook/rhymebook-cli/pkg/buildinfo.Commit=9c41f2a
// -X github.com/rhymebook/rhymebook-cli/pkg/buildinfo.BuildTime=2026-08-29T10:30:00Z
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info holds build information for the CLI.
type Info struct {
	Name      string `json:"name" yaml:"name"`
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildTime string `json:"build_time" yaml:"build_time"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// Get returns build info for the rhymebook binary.
func Get() Info {
	return Info{
		Name:      "rhymebook",
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable one-liner like "v0.3.1 (9c41f2a, 2026-08-29T10:30:00Z)"
func String() string {
	return Version + " (" + Commit + ", " + BuildTime + ")"
}
