package logvisor

import (
	"strconv"
	"strings"
	"unicode/utf16"
)

const (
	// Texts written to the registry fallback (used for testing).
	_ERROR_MESSAGE_SINK_FAILED   = "sink report failed"
	_ERROR_MESSAGE_SINK_PANICKED = "panic in sink report"
	_ERROR_UNKNOWN_PANIC_TEXT    = "[no panic description]"
)

// Converts a panic value into a compact readable string (used when
// translating sink panics into fallback messages)
func panicDesc(panic any) (errtext string) {
	switch v := panic.(type) {
	case string:
		errtext = ": `" + v + "`"
	case error:
		errtext = ": (error) `" + v.Error() + "`"
	default:
		errtext = " " + _ERROR_UNKNOWN_PANIC_TEXT
	}
	return errtext
}

// ParseLevel converts a level name (info, warning, error, fatal; case and
// surrounding spaces ignored) to a Level. "warn" is accepted as an alias.
func ParseLevel(s string) (Level, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warn" {
		return LVL_WARNING, true
	}
	for i, name := range LevelNames {
		if name == s {
			return Level(i), true
		}
	}
	return LVL_INFO, false
}

// ParseColorMode converts auto|always|never (also on|off) to a ColorMode.
// Empty input means auto.
func ParseColorMode(s string) (ColorMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return COLOR_AUTO, true
	case "always", "on":
		return COLOR_ALWAYS, true
	case "never", "off":
		return COLOR_NEVER, true
	default:
		return COLOR_AUTO, false
	}
}

// Decodes a UTF-16 ("wide") format string to UTF-8 at the formatting
// boundary so that sinks only ever see UTF-8.
func decodeWide(wide []uint16) string {
	return string(utf16.Decode(wide))
}

// Converts an uptime value to the "%5.4f" header representation without
// going through fmt (four decimals always exceed the five column width).
func formatUptime(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 4, 64)
}
