// Package version exposes build information stamped in via -ldflags.
package version

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X .../internal/version.Version=1.2.3 ..."
var (
	// Version is the semantic version of the binary.
	Version = "0.1.0"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// BuildTime is the build timestamp.
	BuildTime = "unknown"
)

// Short returns just the version number.
func Short() string {
	return Version
}

// Full returns the version, commit, and build time in one line.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}
