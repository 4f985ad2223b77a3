package logvisor

/*
Defines the core data types used by the logging facility:
  - basetype and a small set of typed aliases for clarity
  - Envelope: the per-report bundle of metadata handed to every sink
  - Sink: the contract implemented by all backends (console, file, zap...)
  - Registry: the central state object holding sinks, counters and hooks
  - Module: the lightweight per-subsystem reporting handle

Also defines package-wide constants, enums and small helpers:
  - level values, labels and color maps
  - default values
  - normalization helpers
*/

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/fatih/color"
)

type basetype byte // basetype is the underlying byte-sized representation used for enums

type Level basetype     // Report severity (alias for byte)
type ColorMode basetype // Color policy of text sinks

// SourceLocation is the file:line pair attached by ReportSource calls.
type SourceLocation struct {
	File string
	Line uint
}

// Envelope is the ephemeral value built once per report call and delivered
// to every registered sink. Sinks must not keep the pointer after Report
// returns.
type Envelope struct {
	Module  string          // module name of the reporting facade
	Message string          // formatted message body (UTF-8)
	Thread  string          // registered name of the reporting goroutine, "" if unset
	Source  *SourceLocation // nil unless reported with source location
	Uptime  float64         // seconds elapsed since process start
	Frame   uint64          // host frame index, 0 means "do not display"
	Level   Level
}

// Sink is a backend receiving every dispatched report. Report is called
// with the registry dispatch lock held; a returned error is written to the
// registry fallback and never reaches the reporting module.
type Sink interface {
	Report(env *Envelope) error
}

// KeyedSink is implemented by sinks that may exist only once per registry.
// Two sinks with equal keys never coexist: registering the second is a no-op.
type KeyedSink interface {
	Sink
	SinkKey() string
}

// Registry is the central state holder: the ordered sink list guarded by the
// dispatch lock, the process counters, the thread names and the severity
// hooks. Build it with New; the zero value is not usable.
type Registry struct {
	sync struct {
		dispMtx sync.Mutex   // dispatch lock, guards sinks both for mutation and fan-out
		fbckMtx sync.RWMutex // guards access to fallback writer
	}
	sinks      []Sink
	fallbck    io.Writer       // fallback writer used to report sink failures
	threads    *threadNames    // goroutine id -> name
	clock      *uptimeClock    // elapsed time source
	exit       func()          // called after a Fatal report was dispatched
	breakpoint func(*Envelope) // called after Error and Fatal reports
	errcnt     atomic.Uint64   // cumulative Error reports
	frame      atomic.Uint64   // host frame index
}

// Module is the per-subsystem reporting handle bound to a fixed name.
//
// Modules are lightweight and intended to be created by Registry.NewModule
// (or the package-level NewModule for the default registry).
type Module struct {
	registry *Registry
	name     string
}

// LevelMap is a fixed-size array with one entry per level. Used for labels.
type LevelMap [_LVL_MAX_for_checks_only]string

// LevelColorMap holds the fatih/color attributes used for the level label.
type LevelColorMap [_LVL_MAX_for_checks_only][]color.Attribute

/////////////////////////////////////////////////////////////////////////////////////////

const (
	// Level values. The trailing _LVL_MAX_for_checks_only is used as an
	// exclusive upper bound for normalization checks.
	LVL_INFO Level = iota
	LVL_WARNING
	LVL_ERROR
	LVL_FATAL
	_LVL_MAX_for_checks_only
)

const (
	// Color policies for console and writer sinks.
	COLOR_AUTO   ColorMode = iota // probe the terminal once per process
	COLOR_ALWAYS                  // always emit color sequences
	COLOR_NEVER                   // plain text only
	_COLOR_MAX_for_checks_only
)

const (
	// Default values
	DEFAULT_FATAL_EXIT_CODE = 134   // exit status after a Fatal report (128 + SIGABRT)
	DEFAULT_OUT_BUFF        = 256   // initial buffer size for a rendered line
	DEFAULT_FILE_PERM       = 0o644 // permissions of files created by file sinks
	CONSOLE_SINK_KEY        = "console"
	FILE_SINK_KEY_PREFIX    = "file:"
	ZAP_SINK_KEY_PREFIX     = "zap:"
)

/////////////////////////////////////////////////////////////////////////////////////////

// Level labels printed in the line header
var LevelLabels = &LevelMap{
	"INFO",        //LVL_INFO
	"WARNING",     //LVL_WARNING
	"ERROR",       //LVL_ERROR
	"FATAL ERROR", //LVL_FATAL
}

// Level names accepted by ParseLevel (lower case)
var LevelNames = &LevelMap{
	"info",    //LVL_INFO
	"warning", //LVL_WARNING
	"error",   //LVL_ERROR
	"fatal",   //LVL_FATAL
}

// Predefined label colors for ANSI terminals
var LevelColors = &LevelColorMap{
	{color.Bold, color.FgCyan},   //LVL_INFO
	{color.Bold, color.FgYellow}, //LVL_WARNING
	{color.Bold, color.FgRed},    //LVL_ERROR
	{color.Bold, color.BgRed},    //LVL_FATAL
}

// Generic byte normalization helper.
func norm_byte[T ~byte](val, overlimit, def T) T {
	if val < overlimit {
		return val
	} else {
		return def
	}
}

// Ensures a provided Level is within the valid range
func normLevel(level Level) Level {
	return norm_byte(level, _LVL_MAX_for_checks_only, LVL_INFO)
}

// Ensures a provided ColorMode is within the valid range
func normColorMode(mode ColorMode) ColorMode {
	return norm_byte(mode, _COLOR_MAX_for_checks_only, COLOR_AUTO)
}

// String returns the header label of the level.
func (lvl Level) String() string {
	return LevelLabels[normLevel(lvl)]
}
