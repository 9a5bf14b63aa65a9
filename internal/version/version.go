// Package version reports how the binary was built.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via ldflags, e.g.
// -X bennypowers.dev/sass2ts/internal/version.Version=v1.0.0
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GitDirty  = ""
)

// Info describes the running build
type Info struct {
	Version   string `yaml:"version" json:"version"`
	GitCommit string `yaml:"gitCommit" json:"gitCommit"`
	BuildTime string `yaml:"buildTime" json:"buildTime"`
	Dirty     bool   `yaml:"dirty" json:"dirty"`
	GoVersion string `yaml:"goVersion,omitempty" json:"goVersion,omitempty"`
}

// readBuildInfo is swapped out in tests
var readBuildInfo = debug.ReadBuildInfo

// Get returns the build information. Values set through ldflags take
// precedence over what the Go toolchain embedded.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		Dirty:     GitDirty == "dirty",
	}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "unknown" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			if GitDirty == "" {
				info.Dirty = s.Value == "true"
			}
		}
	}
	return info
}

// String renders the version with a short commit, e.g. "v1.0.0 (abc1234)"
func (i Info) String() string {
	v := i.Version
	if i.Dirty {
		v += "-dirty"
	}
	if i.GitCommit == "unknown" || i.GitCommit == "" {
		return v
	}
	commit := i.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s)", v, commit)
}
