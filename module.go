package logvisor

/*
A Module is the handle a subsystem reports through. It is bound to a fixed
name at construction and carries nothing else, so it is cheap to create one
per package, type or goroutine.

Every report call formats the message once, builds an Envelope and
dispatches it synchronously: when the call returns, every registered sink
has written the line. Reports never return errors; sink failures go to the
registry fallback writer.

Two call shapes exist, each with a variadic form and an explicit argument
list form (for forwarding from other variadic functions):
  - Report / ReportArgs: level + printf-style format
  - ReportSource / ReportSourceArgs: the same plus a source file and line
and "wide" forms taking UTF-16 formats (ReportWide, ReportSourceWide).
*/

import (
	"fmt"
	"path/filepath"
	"runtime"
	"unicode/utf16"
)

// Constructs a module facade reporting through this registry.
func (r *Registry) NewModule(name string) *Module {
	return &Module{registry: r, name: name}
}

// Name the module reports with.
func (m *Module) Name() string {
	return m.name
}

// Registry the module reports through.
func (m *Module) Registry() *Registry {
	return m.registry
}

// Reports a printf-style message at the given level.
func (m *Module) Report(level Level, format string, args ...any) {
	m.report(level, nil, format, args)
}

// ReportArgs is Report with an explicit argument list.
func (m *Module) ReportArgs(level Level, format string, args []any) {
	m.report(level, nil, format, args)
}

// Reports a printf-style message together with its source location, shown
// as {file:line} in text sinks.
//
//	log.ReportSource(logvisor.LVL_WARNING, "foo.c", 42, "bad value %d", 9)
func (m *Module) ReportSource(level Level, file string, line uint, format string, args ...any) {
	m.report(level, &SourceLocation{File: file, Line: line}, format, args)
}

// ReportSourceArgs is ReportSource with an explicit argument list.
func (m *Module) ReportSourceArgs(level Level, file string, line uint, format string, args []any) {
	m.report(level, &SourceLocation{File: file, Line: line}, format, args)
}

// ReportWide reports with a UTF-16 format string. The format is decoded
// to UTF-8 before formatting; sinks receive UTF-8 only.
func (m *Module) ReportWide(level Level, format []uint16, args ...any) {
	m.report(level, nil, decodeWide(format), args)
}

// ReportSourceWide is ReportSource with a UTF-16 format string.
func (m *Module) ReportSourceWide(level Level, file string, line uint, format []uint16, args ...any) {
	m.report(level, &SourceLocation{File: file, Line: line}, decodeWide(format), args)
}

// Here reports with the caller's file (base name) and line as source.
func (m *Module) Here(level Level, format string, args ...any) {
	var src *SourceLocation
	if _, file, line, ok := runtime.Caller(1); ok {
		src = &SourceLocation{File: filepath.Base(file), Line: uint(line)}
	}
	m.report(level, src, format, args)
}

// Wide converts s to a UTF-16 format string for the *Wide calls.
func Wide(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Builds the envelope and dispatches it.
func (m *Module) report(level Level, src *SourceLocation, format string, args []any) {
	m.registry.dispatch(&Envelope{
		Module:  m.name,
		Message: fmt.Sprintf(format, args...),
		Thread:  m.registry.threads.lookup(),
		Source:  src,
		Level:   normLevel(level),
	})
}

/////////////////////////////////////////////////////////////////////////////////////////
/*
Convenience level-specific helpers. These are thin wrappers around Report
that provide inline hints in editors and documentation tools.
*/

// Info reports at INFO level.
func (m *Module) Info(format string, args ...any) {
	m.report(LVL_INFO, nil, format, args)
}

// Warn reports at WARNING level.
func (m *Module) Warn(format string, args ...any) {
	m.report(LVL_WARNING, nil, format, args)
}

// Error reports at ERROR level: the registry error counter is incremented
// once the report has been written.
func (m *Module) Error(format string, args ...any) {
	m.report(LVL_ERROR, nil, format, args)
}

// Err reports an error value at ERROR level. A nil error is ignored.
func (m *Module) Err(e error) {
	if e == nil {
		return
	}
	m.report(LVL_ERROR, nil, "%s", []any{e.Error()})
}

// Fatal reports at FATAL level: the process exits once every sink has
// written the line (unless the registry exit function was replaced).
func (m *Module) Fatal(format string, args ...any) {
	m.report(LVL_FATAL, nil, format, args)
}
