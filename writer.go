package logvisor

/*********************************************************************************
io.Writer adapter

A module can be turned into an io.Writer bound to one level, so it can feed
the standard library log package, exec.Cmd output, fmt.Fprintf and friends:

	fmt.Fprintf(mod.Lvl(logvisor.LVL_WARNING), "disk low: %d%%", percent)
	stdlog.SetOutput(mod.Lvl(logvisor.LVL_INFO))

Every Write call is one report; a single trailing newline is dropped since
sinks terminate lines themselves.
*/

import "bytes"

// LevelWriter reports every Write through its module at a fixed level.
type LevelWriter struct {
	module *Module
	level  Level
}

// Lvl returns an io.Writer reporting at level through the module.
func (m *Module) Lvl(level Level) *LevelWriter {
	return &LevelWriter{module: m, level: normLevel(level)}
}

// Write implements io.Writer. It always consumes the whole payload; a
// payload that is empty or holds only the newline reports nothing.
func (w *LevelWriter) Write(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	msg := bytes.TrimSuffix(p, []byte{'\n'})
	if len(msg) == 0 {
		return len(p), nil
	}
	w.module.report(w.level, nil, "%s", []any{string(msg)})
	return len(p), nil
}
