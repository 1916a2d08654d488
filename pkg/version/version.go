// Package version holds the build version, overridden at link time with
// -ldflags "-X github.com/Dicklesworthstone/tumble/pkg/version.Version=vX.Y.Z".
package version

var Version = "v0.1.0"
