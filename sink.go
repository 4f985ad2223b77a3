package logvisor

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// WriterSink renders one line per report to an io.Writer. It serializes its
// own writes, so it is safe to use directly outside of a registry.
type WriterSink struct {
	mtx     sync.Mutex
	out     io.Writer
	msgbuf  *bytes.Buffer // buffer reused while building a line
	colored bool
}

// NewWriterSink creates a sink writing to out. COLOR_AUTO enables color
// only when out is a color capable terminal.
func NewWriterSink(out io.Writer, mode ColorMode) *WriterSink {
	if out == nil {
		out = io.Discard
	}
	return &WriterSink{
		out:     out,
		msgbuf:  bytes.NewBuffer(make([]byte, 0, DEFAULT_OUT_BUFF)),
		colored: resolveColor(mode, func() bool { return isColorTerminal(out) }),
	}
}

// Report implements Sink. The line is written with a single Write call.
func (s *WriterSink) Report(env *Envelope) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	buildTextMessage(s.msgbuf, env, s.colored)
	if n, err := s.msgbuf.WriteTo(s.out); err != nil {
		return fmt.Errorf("error writing log line (%d bytes written): %w", n, err)
	}
	return nil
}

// Colored reports whether the sink emits ANSI color sequences.
func (s *WriterSink) Colored() bool {
	return s.colored
}

/////////////////////////////////////////////////////////////////////////////////////////

// ConsoleSink renders reports to the standard error stream. Only one console
// sink can be registered in a registry (see SinkKey).
type ConsoleSink struct {
	WriterSink
}

// NewConsoleSink creates the stderr sink. Color support is probed once per
// process and cached.
func NewConsoleSink() *ConsoleSink {
	return NewConsoleSinkTo(os.Stderr, COLOR_AUTO)
}

// NewConsoleSinkTo creates a console sink on another stream (tests, stdout).
// COLOR_AUTO uses the cached process-wide stderr probe.
func NewConsoleSinkTo(out io.Writer, mode ColorMode) *ConsoleSink {
	if out == nil {
		out = io.Discard
	}
	return &ConsoleSink{WriterSink{
		out:     out,
		msgbuf:  bytes.NewBuffer(make([]byte, 0, DEFAULT_OUT_BUFF)),
		colored: resolveColor(mode, ConsoleColorEnabled),
	}}
}

// SinkKey implements KeyedSink: console sinks are unique per kind.
func (s *ConsoleSink) SinkKey() string {
	return CONSOLE_SINK_KEY
}

var consoleColor struct {
	once    sync.Once
	enabled bool
}

// ConsoleColorEnabled reports whether stderr supports ANSI colors. The probe
// runs once per process: stderr must be a terminal, TERM must name an xterm
// compatible terminal and NO_COLOR must be unset.
func ConsoleColorEnabled() bool {
	consoleColor.once.Do(func() {
		consoleColor.enabled = isColorTerminal(os.Stderr)
	})
	return consoleColor.enabled
}

func isColorTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok || f == nil {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return strings.HasPrefix(os.Getenv("TERM"), "xterm") && term.IsTerminal(int(f.Fd()))
}

func resolveColor(mode ColorMode, probe func() bool) bool {
	switch normColorMode(mode) {
	case COLOR_ALWAYS:
		return true
	case COLOR_NEVER:
		return false
	default:
		return probe()
	}
}
