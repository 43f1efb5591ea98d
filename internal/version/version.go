// Package version reports the leadnexus build version.
package version

import "runtime/debug"

// Version is set at build time with -ldflags "-X .../version.Version=v1.2.3".
var Version = "development"

// Commit is set at build time the same way as Version.
var Commit = "unknown"

const shortCommitLen = 7

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version with the commit appended when known.
// Values not set by ldflags come from the module build info, so
// "go install ...@v1.2.3" builds still report v1.2.3.
func String() string {
	version, commit := Version, Commit
	if info, ok := readBuildInfo(); ok {
		if version == "development" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		if commit == "unknown" {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					commit = s.Value
				}
			}
		}
	}
	if len(commit) > shortCommitLen && commit != "unknown" {
		commit = commit[:shortCommitLen]
	}
	if commit != "unknown" {
		return version + "+" + commit
	}
	return version
}
