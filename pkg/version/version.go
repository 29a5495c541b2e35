// pkg/version/version.go

// Package version holds build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/CodeMonkeyCybersecurity/glimpse/pkg/version.Version=1.0.0"
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// String is the one-line version report.
func String() string {
	commit := Commit
	if commit == "" {
		commit = vcsRevision()
	}
	s := "glimpse " + Version
	if commit != "" {
		s += " (" + commit + ")"
	}
	if Date != "" {
		s += " built " + Date
	}
	return fmt.Sprintf("%s %s/%s %s", s, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
