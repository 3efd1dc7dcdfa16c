// Package build holds build-time information.
package build

// Version is the tasker release version.
// It defaults to "dev" and is set with -ldflags "-X go.trai.ch/tasker/internal/build.Version=...".
var Version = "dev"
