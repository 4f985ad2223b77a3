//go:build !linux

package logvisor

// No portable way to name OS threads elsewhere.
func setOSThreadName(string) {}
