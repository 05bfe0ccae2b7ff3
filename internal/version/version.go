// Package version exposes the build-time version stamp.
package version

// version is overridden at build time via
// -ldflags "-X github.com/daipham1210/lintsift/internal/version.version=...".
var version = "v0.0.0"

// Version returns the version the binary was built as.
func Version() string {
	return version
}
