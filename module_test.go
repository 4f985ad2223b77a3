package logvisor

import (
	"fmt"
	stdlog "log"
	"runtime"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func forwardReport(m *Module, level Level, format string, args ...any) {
	m.ReportArgs(level, "fwd: "+format, args)
}

func forwardReportSource(m *Module, level Level, format string, args ...any) {
	m.ReportSourceArgs(level, "fwd.go", 7, format, args)
}

func Test_Module_Report(t *testing.T) {
	r := newTestRegistry(nil, nil)
	out1 := &FakeWriter{}
	r.RegisterSink(NewWriterSink(out1, COLOR_NEVER))
	m := r.NewModule("mod")
	assert.Equal(t, "mod", m.Name())
	assert.Equal(t, r, m.Registry())

	tests := []struct {
		name string
		call func()
		want string
	}{
		{"report", func() { m.Report(LVL_INFO, "%s=%d", "x", 1) }, "[1.5000 INFO mod] x=1\n"},
		{"report_no_args", func() { m.Report(LVL_WARNING, "100%% done") }, "[1.5000 WARNING mod] 100% done\n"},
		{"report_args", func() { forwardReport(m, LVL_ERROR, "%d-%d", 1, 2) }, "[1.5000 ERROR mod] fwd: 1-2\n"},
		{"report_source_args", func() { forwardReportSource(m, LVL_INFO, "%v", true) }, "[1.5000 INFO mod {fwd.go:7}] true\n"},
		{"report_wide", func() { m.ReportWide(LVL_INFO, Wide("wide %s ✓"), "text") }, "[1.5000 INFO mod] wide text ✓\n"},
		{"report_source_wide", func() { m.ReportSourceWide(LVL_WARNING, "w.c", 3, Wide("%d"), 5) }, "[1.5000 WARNING mod {w.c:3}] 5\n"},
		{"info", func() { m.Info("i") }, "[1.5000 INFO mod] i\n"},
		{"warn", func() { m.Warn("w") }, "[1.5000 WARNING mod] w\n"},
		{"error", func() { m.Error("e%d", 1) }, "[1.5000 ERROR mod] e1\n"},
		{"err", func() { m.Err(fmt.Errorf("wrapped 50%%: %w", assert.AnError)) }, "[1.5000 ERROR mod] wrapped 50%: " + assert.AnError.Error() + "\n"},
		{"bad_level", func() { m.Report(Level(99), "normalized") }, "[1.5000 INFO mod] normalized\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out1.Clear()
			tt.call()
			assert.Equal(t, tt.want, out1.String())
		})
	}
}

func Test_Module_Here(t *testing.T) {
	r := newTestRegistry(nil, nil)
	out1 := &FakeWriter{}
	r.RegisterSink(NewWriterSink(out1, COLOR_NEVER))
	_, _, line, _ := runtime.Caller(0)
	r.NewModule("here").Here(LVL_INFO, "at %s", "home") // must stay right after runtime.Caller
	assert.Equal(t, "[1.5000 INFO here {module_test.go:"+strconv.Itoa(line+1)+"}] at home\n", out1.String())
}

func Test_Module_Lvl(t *testing.T) {
	r := newTestRegistry(nil, nil)
	out1 := &FakeWriter{}
	r.RegisterSink(NewWriterSink(out1, COLOR_NEVER))
	m := r.NewModule("wr")

	t.Run("fprintf", func(t *testing.T) {
		out1.Clear()
		n, err := fmt.Fprintf(m.Lvl(LVL_WARNING), "disk low: %d%%\n", 5)
		assert.NoError(t, err)
		assert.Equal(t, len("disk low: 5%\n"), n)
		assert.Equal(t, "[1.5000 WARNING wr] disk low: 5%\n", out1.String())
	})
	t.Run("nil_message", func(t *testing.T) {
		out1.Clear()
		n, err := m.Lvl(LVL_INFO).Write(nil)
		assert.NoError(t, err)
		assert.Zero(t, n)
		assert.Empty(t, out1.String())
	})
	t.Run("newline_only", func(t *testing.T) {
		out1.Clear()
		n, err := m.Lvl(LVL_WARNING).Write([]byte("\n"))
		assert.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Empty(t, out1.String())
	})
	t.Run("std_log", func(t *testing.T) {
		out1.Clear()
		l := stdlog.New(m.Lvl(LVL_ERROR), "std: ", 0)
		l.Println("bridged")
		assert.Equal(t, "[1.5000 ERROR wr] std: bridged\n", out1.String())
		assert.Equal(t, uint64(1), r.ErrorCount(), "writer errors are counted")
	})
	t.Run("level_normalized", func(t *testing.T) {
		assert.Equal(t, LVL_INFO, m.Lvl(Level(250)).level)
	})
}

func Test_Default(t *testing.T) {
	assert.Same(t, Default(), Default())
	m := NewModule("global")
	assert.Same(t, Default(), m.Registry())

	before := ErrorCount()
	out1 := &FakeWriter{}
	Default().RegisterSink(NewWriterSink(out1, COLOR_NEVER))
	defer UnregisterLoggers()

	SetFrameIndex(11)
	assert.Equal(t, uint64(11), FrameIndex())
	assert.Equal(t, uint64(12), NextFrame())
	RegisterThreadName("global-test")
	m.Error("via default")
	SetFrameIndex(0)
	assert.Equal(t, before+1, ErrorCount())
	assert.Contains(t, out1.String(), " (12) ERROR global (global-test)] via default\n")

	path := t.TempDir() + "/default.log"
	assert.True(t, RegisterFileLogger(path))
	assert.False(t, RegisterFileLogger(path))
	UnregisterLoggers()
	assert.Zero(t, Default().SinkCount())
	m.Info("silent")
}
