// Package logvisor is a process-wide logging facility: modules emit
// severity-tagged, formatted reports that are fanned out synchronously to
// every registered sink (console, file, zap or custom backends) under one
// dispatch lock, so lines from different goroutines never interleave.
//
// Error reports increment a global error counter, Fatal reports terminate
// the process once every sink has written the line.
package logvisor

import (
	"io"
	"os"
)

// Creates a registry with no sinks and a silent fallback. Sink failures are
// dropped unless a fallback writer is set with SetFallback.
//
// Preferred usage example:
//
//	func main() {
//	    reg := logvisor.New()
//	    reg.RegisterConsoleLogger()
//	    log := reg.NewModule("main")
//	    log.Report(logvisor.LVL_INFO, "started with %d workers", n)
//	    ...
//	}
func New() *Registry {
	return NewWithFallback(nil)
}

// NewWithFallback creates a registry reporting sink failures to fallback.
func NewWithFallback(fallback io.Writer) *Registry {
	r := new(Registry)
	r.threads = newThreadNames()
	r.clock = newUptimeClock()
	r.SetFallback(fallback)
	r.SetExitFunc(nil)
	r.SetBreakpoint(nil)
	return r
}

// Sets the writer receiving one line per sink failure or sink panic,
// io.Discard is used instead of nil to silently drop them.
//
// The operation is protected by mutex for thread safety.
func (r *Registry) SetFallback(f io.Writer) *Registry {
	r.sync.fbckMtx.Lock()
	defer r.sync.fbckMtx.Unlock()
	if f != nil {
		r.fallbck = f
	} else {
		r.fallbck = io.Discard
	}
	return r
}

// Sets the function called after a Fatal report reached every sink. The
// default (also restored by nil) exits the process with
// DEFAULT_FATAL_EXIT_CODE. Tests replace it to observe Fatal reports; when
// the function returns, the reporting call returns too.
func (r *Registry) SetExitFunc(exit func()) *Registry {
	if exit == nil {
		exit = exitProcess
	}
	r.sync.dispMtx.Lock()
	defer r.sync.dispMtx.Unlock()
	r.exit = exit
	return r
}

// Sets the hook called after every Error or Fatal report (before the exit
// of a Fatal one). Handy as a debugger breakpoint target. nil means no-op.
func (r *Registry) SetBreakpoint(bp func(*Envelope)) *Registry {
	if bp == nil {
		bp = func(*Envelope) {}
	}
	r.sync.dispMtx.Lock()
	defer r.sync.dispMtx.Unlock()
	r.breakpoint = bp
	return r
}

func exitProcess() {
	os.Exit(DEFAULT_FATAL_EXIT_CODE)
}

/////////////////////////////////////////////////////////////////////////////////////////

// Registers the stderr console sink. Returns false (and does nothing) if a
// console sink is already registered.
func (r *Registry) RegisterConsoleLogger() bool {
	return r.RegisterSink(NewConsoleSink())
}

// Registers a file sink appending to path. Returns false (and does nothing)
// if a file sink for the same path is already registered.
func (r *Registry) RegisterFileLogger(path string) bool {
	return r.RegisterFileLoggerWithOptions(path, FileOptions{})
}

// RegisterFileLoggerWithOptions is RegisterFileLogger with explicit options.
func (r *Registry) RegisterFileLoggerWithOptions(path string, opts FileOptions) bool {
	return r.RegisterSink(NewFileSink(path, opts))
}

// Appends a sink to the dispatch list. Keyed sinks are deduplicated: if a
// registered sink has the same key the call is a no-op. Returns whether the
// sink was added; nil sinks are ignored.
//
// The operation takes the dispatch lock, so it never races with a report.
func (r *Registry) RegisterSink(s Sink) bool {
	if s == nil {
		return false
	}
	r.sync.dispMtx.Lock()
	defer r.sync.dispMtx.Unlock()
	if keyed, ok := s.(KeyedSink); ok {
		key := keyed.SinkKey()
		for _, registered := range r.sinks {
			if k, ok := registered.(KeyedSink); ok && k.SinkKey() == key {
				return false
			}
		}
	}
	r.sinks = append(r.sinks, s)
	return true
}

// Removes every sink; reports are silent until a sink is registered again.
// Sinks implementing io.Closer are closed (failures go to the fallback).
// Counters and thread names are not touched.
func (r *Registry) UnregisterLoggers() {
	r.sync.dispMtx.Lock()
	removed := r.sinks
	r.sinks = nil
	r.sync.dispMtx.Unlock()
	for _, s := range removed {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				r.handleSinkError(_ERROR_MESSAGE_SINK_FAILED + ": " + err.Error())
			}
		}
	}
}

// Number of registered sinks.
func (r *Registry) SinkCount() int {
	r.sync.dispMtx.Lock()
	defer r.sync.dispMtx.Unlock()
	return len(r.sinks)
}

// Sinks returns a copy of the dispatch list in registration order.
func (r *Registry) Sinks() []Sink {
	r.sync.dispMtx.Lock()
	defer r.sync.dispMtx.Unlock()
	return append([]Sink(nil), r.sinks...)
}

// Lock takes the dispatch lock and returns its release function, so the
// host can write to the sinks' streams without interleaving with reports.
// Reporting while holding it deadlocks.
//
//	unlock := reg.Lock()
//	fmt.Fprintln(os.Stderr, "raw diagnostic dump")
//	unlock()
func (r *Registry) Lock() (unlock func()) {
	r.sync.dispMtx.Lock()
	return r.sync.dispMtx.Unlock
}

/////////////////////////////////////////////////////////////////////////////////////////

// Cumulative number of Error reports.
func (r *Registry) ErrorCount() uint64 {
	return r.errcnt.Load()
}

// Sets the frame index shown in every following report (0 hides it).
func (r *Registry) SetFrameIndex(frame uint64) {
	r.frame.Store(frame)
}

// Current frame index.
func (r *Registry) FrameIndex() uint64 {
	return r.frame.Load()
}

// Increments the frame index (once per host tick) and returns the new value.
func (r *Registry) NextFrame() uint64 {
	return r.frame.Add(1)
}

// Seconds elapsed since the registry was created.
func (r *Registry) Uptime() float64 {
	return r.clock.uptime()
}

// Names the calling goroutine for display in its reports. Calling it again
// replaces the name. The name is also passed to the OS as the thread name
// where supported (best effort, meaningful after runtime.LockOSThread).
func (r *Registry) RegisterThreadName(name string) {
	r.threads.register(name)
}

// Name registered by the calling goroutine, "" if none.
func (r *Registry) ThreadName() string {
	return r.threads.lookup()
}
