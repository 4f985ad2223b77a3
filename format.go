package logvisor

/*
Line rendering shared by every text sink (console, writer, file). The
header layout is

	[<uptime> (<frame>) <LABEL> <module> {<file>:<line>} (<thread>)] <message>

where the frame group appears only for a nonzero frame index, the source
group only for reports made with a source location and the thread group
only when the reporting goroutine registered a name. In colored mode every
header field is wrapped in its own ANSI sequence; the message body is never
colored so its bytes are identical in both modes.
*/

import (
	"bytes"
	"strconv"

	"github.com/fatih/color"
)

// headerPalette holds the colors of the header fields.
type headerPalette struct {
	bracket *color.Color
	uptime  *color.Color
	module  *color.Color
	source  *color.Color
	thread  *color.Color
	levels  [_LVL_MAX_for_checks_only]*color.Color
}

var palette = newHeaderPalette(LevelColors)

// Colors are forced on: whether to use them at all is decided per sink, not
// by the fatih/color global NoColor switch.
func newHeaderPalette(levels *LevelColorMap) *headerPalette {
	forced := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		c.EnableColor()
		return c
	}
	p := &headerPalette{
		bracket: forced(color.Bold),
		uptime:  forced(color.FgGreen),
		module:  forced(color.Bold),
		source:  forced(color.Faint),
		thread:  forced(color.Bold, color.FgMagenta),
	}
	for i := range p.levels {
		p.levels[i] = forced(levels[i]...)
	}
	return p
}

// buildTextMessage renders the full line for env into outBuffer (which is
// reset first) and returns the same buffer. A nil envelope renders nothing.
func buildTextMessage(outBuffer *bytes.Buffer, env *Envelope, colored bool) *bytes.Buffer {
	outBuffer.Reset()
	if env == nil {
		return outBuffer
	}
	paint := func(c *color.Color, s string) {
		if colored {
			outBuffer.WriteString(c.Sprint(s))
		} else {
			outBuffer.WriteString(s)
		}
	}
	level := normLevel(env.Level)
	paint(palette.bracket, "[")
	paint(palette.uptime, formatUptime(env.Uptime))
	if env.Frame != 0 {
		outBuffer.WriteByte(' ')
		paint(palette.uptime, "("+strconv.FormatUint(env.Frame, 10)+")")
	}
	outBuffer.WriteByte(' ')
	paint(palette.levels[level], LevelLabels[level])
	outBuffer.WriteByte(' ')
	paint(palette.module, env.Module)
	if env.Source != nil {
		outBuffer.WriteByte(' ')
		paint(palette.source, "{"+env.Source.File+":"+strconv.FormatUint(uint64(env.Source.Line), 10)+"}")
	}
	if len(env.Thread) > 0 {
		outBuffer.WriteByte(' ')
		paint(palette.thread, "("+env.Thread+")")
	}
	paint(palette.bracket, "]")
	outBuffer.WriteByte(' ')
	outBuffer.WriteString(env.Message)
	outBuffer.WriteByte('\n')
	return outBuffer
}
