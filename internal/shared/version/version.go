// Package version reports the build version stamped in at link time.
package version

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// Set with -ldflags "-X github.com/parkline/parkline/internal/shared/version.Current=v1.2.3".
var (
	Current   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether v is a valid semantic version without a
// prerelease suffix. "dev" builds are not releases.
func IsRelease(v string) bool {
	n := Normalize(v)
	return semver.IsValid(n) && semver.Prerelease(n) == ""
}

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	Release   bool   `json:"release"`
}

func Get() Info {
	return Info{
		Version:   Current,
		Commit:    Commit,
		BuildTime: BuildTime,
		Release:   IsRelease(Current),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.Commit, i.BuildTime)
}
