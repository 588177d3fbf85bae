// Package version reports the build version of qstamp.
package version

import "runtime/debug"

// Version is set via ldflags during build.
var Version = "dev"

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the ldflags version, falling back to the module version
// recorded by `go install`, then to "dev".
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}
