// Package version holds the CLI version string.
package version

// Version is the semantic version of the atlasdata CLI, overridable at build
// time with -ldflags "-X ...internal/version.Version=...".
var Version = "0.1.0"
