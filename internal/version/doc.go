// Package version holds the logvisor build stamp. The linker overrides the
// variables, e.g.
//
//	go build -ldflags "-X github.com/abyssdigger/logvisor/internal/version.Commit=$(git rev-parse --short HEAD)"
package version
