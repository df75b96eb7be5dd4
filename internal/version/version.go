// Package version exposes build metadata for the htmlcase binary.
//
// The variables are set at build time with ldflags:
//
//	go build -ldflags "-X github.com/mrjoshuak/htmlcase/internal/version.Version=0.1.0 ..."
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Name is the program name used in version output.
const Name = "htmlcase"

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	Dirty     = "false"
	BuildDate = "unknown"
)

// Info is the structured form served by GET /version and printed by
// "htmlcase version --full".
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current version information.
func Get() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the version, suffixed with -dirty for modified trees.
func String() string {
	if Dirty == "true" {
		return Version + "-dirty"
	}
	return Version
}

// Full returns a multi-line description of the build.
func Full() string {
	info := Get()

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", Name, String())
	fmt.Fprintf(&sb, "  Commit:     %s\n", info.Commit)
	fmt.Fprintf(&sb, "  Built:      %s\n", info.BuildDate)
	fmt.Fprintf(&sb, "  Go version: %s\n", info.GoVersion)
	fmt.Fprintf(&sb, "  OS/Arch:    %s", info.Platform)
	return sb.String()
}
