package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// BinaryName is the name the CLI reports itself as
const BinaryName = "godscn"

// Set with -ldflags "-X github.com/ludo-technologies/godscn/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Build describes the running binary
type Build struct {
	Version string
	Commit  string
	Date    string
	Go      string
	OS      string
	Arch    string
}

// Current returns the build description. Values not stamped by the linker
// fall back to the module build info when `go install` embedded it.
func Current() Build {
	b := Build{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && b.Commit == "unknown":
			b.Commit = s.Value
		case s.Key == "vcs.time" && b.Date == "unknown":
			b.Date = s.Value
		}
	}
	return b
}

func (b Build) String() string {
	return fmt.Sprintf("%s %s\nCommit: %s\nBuilt: %s\nGo: %s\nOS/Arch: %s/%s",
		BinaryName, b.Version, b.Commit, b.Date, b.Go, b.OS, b.Arch)
}

// Info returns the multi-line version banner
func Info() string { return Current().String() }

// Short returns just the version string
func Short() string { return Current().Version }
