package version

import (
	"fmt"
	"runtime"
)

// Release metadata of the alarm-report and alarm-listener binaries, set by the
// release build with -ldflags "-X github.com/oshokin/alarm-relay/internal/version.<Name>=...".
//
//nolint:gochecknoglobals // Written by the linker.
var (
	Version   = "0.1.0"
	Commit    = "none"
	BuildTime = "unknown"
)

// Short returns the release number alone, e.g. "0.1.0".
func Short() string {
	return Version
}

// Full describes the release together with the toolchain and platform, for
// bug reports from nodes in the field.
func Full() string {
	return fmt.Sprintf(
		"alarm-relay %s (commit %s, built %s, %s %s/%s)",
		Version, Commit, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	)
}
