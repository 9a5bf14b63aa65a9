package version

import "runtime/debug"

// SetReadBuildInfo replaces the build info source until the returned
// function is called.
func SetReadBuildInfo(fn func() (*debug.BuildInfo, bool)) func() {
	orig := readBuildInfo
	readBuildInfo = fn
	return func() { readBuildInfo = orig }
}
