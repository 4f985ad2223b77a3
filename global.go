package logvisor

import "sync"

/*
Process-wide default registry and the package-level API on top of it. The
registry is built lazily on first use, while its uptime still counts from
process start.
*/

var defaultRegistry struct {
	once sync.Once
	reg  *Registry
}

// Default returns the process-wide registry.
func Default() *Registry {
	defaultRegistry.once.Do(func() {
		defaultRegistry.reg = New()
	})
	return defaultRegistry.reg
}

// NewModule creates a module reporting through the default registry.
func NewModule(name string) *Module {
	return Default().NewModule(name)
}

// RegisterConsoleLogger registers the stderr sink in the default registry.
func RegisterConsoleLogger() bool {
	return Default().RegisterConsoleLogger()
}

// RegisterFileLogger registers a file sink in the default registry.
func RegisterFileLogger(path string) bool {
	return Default().RegisterFileLogger(path)
}

// UnregisterLoggers empties the default registry (silent thereafter).
func UnregisterLoggers() {
	Default().UnregisterLoggers()
}

// RegisterThreadName names the calling goroutine in the default registry.
func RegisterThreadName(name string) {
	Default().RegisterThreadName(name)
}

// ErrorCount of the default registry.
func ErrorCount() uint64 {
	return Default().ErrorCount()
}

// SetFrameIndex sets the frame index of the default registry.
func SetFrameIndex(frame uint64) {
	Default().SetFrameIndex(frame)
}

// FrameIndex of the default registry.
func FrameIndex() uint64 {
	return Default().FrameIndex()
}

// NextFrame advances the frame index of the default registry.
func NextFrame() uint64 {
	return Default().NextFrame()
}
