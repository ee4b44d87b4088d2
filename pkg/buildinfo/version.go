// Package buildinfo reports which build of socialgraph is running.
//
// Release builds stamp the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/socialgraph/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/socialgraph/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/socialgraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries from `go install` carry no ldflags; [Resolve] then falls back to
// the module version and VCS settings recorded by the Go toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info describes one build.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Resolve returns the stamped build info, filling unset fields from the
// binary's embedded build information where available.
func Resolve() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	return fill(info, bi)
}

func fill(info Info, bi *debug.BuildInfo) Info {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && info.Commit == "none":
			info.Commit = s.Value
		case s.Key == "vcs.time" && info.Date == "unknown":
			info.Date = s.Value
		}
	}
	return info
}

// Template returns the cobra version template for the running build.
func Template() string {
	i := Resolve()
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", i.Version, i.Commit, i.Date)
}
