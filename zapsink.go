package logvisor

import (
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapSink forwards reports to a zap logger, so that applications built on
// zap receive the same stream of reports as the text sinks.
//
// Fatal reports are written at zap's ErrorLevel: terminating the process is
// the registry's job, and zap's own Fatal would exit before the remaining
// sinks were served.
type ZapSink struct {
	name   string
	logger *zap.Logger
}

// NewZapSink wraps logger. name identifies the sink; registering two zap
// sinks with the same name is a no-op.
func NewZapSink(name string, logger *zap.Logger) *ZapSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapSink{name: name, logger: logger}
}

// SinkKey implements KeyedSink.
func (s *ZapSink) SinkKey() string {
	return ZAP_SINK_KEY_PREFIX + s.name
}

// Report implements Sink.
func (s *ZapSink) Report(env *Envelope) error {
	if env == nil {
		return nil
	}
	fields := make([]zap.Field, 0, 5)
	fields = append(fields,
		zap.String("module", env.Module),
		zap.Float64("uptime", env.Uptime),
	)
	if env.Frame != 0 {
		fields = append(fields, zap.Uint64("frame", env.Frame))
	}
	if env.Thread != "" {
		fields = append(fields, zap.String("thread", env.Thread))
	}
	if env.Source != nil {
		fields = append(fields, zap.String("source", env.Source.File+":"+strconv.FormatUint(uint64(env.Source.Line), 10)))
	}
	if ce := s.logger.Check(zapLevel(env.Level), env.Message); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

// Sync flushes the wrapped zap logger.
func (s *ZapSink) Sync() error {
	return s.logger.Sync()
}

// Close flushes the wrapped logger; UnregisterLoggers calls it when the
// sink is removed. The logger itself stays usable.
func (s *ZapSink) Close() error {
	return s.Sync()
}

func zapLevel(level Level) zapcore.Level {
	switch normLevel(level) {
	case LVL_WARNING:
		return zapcore.WarnLevel
	case LVL_ERROR, LVL_FATAL:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
