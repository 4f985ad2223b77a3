package logvisor

import (
	"errors"
	"regexp"
	"runtime"
	"sync"
	"time"
)

const testlogstr = "Test log АБВ こんにちは, 世界`'é\"\\\x5A и други глупости! 100%"
const panicStr = "panic generated in sink"
const errorStr = "error generated in writer"

type PanicWriter struct{}

func (p *PanicWriter) Write(b []byte) (int, error) { panic(panicStr) }

type NilPanicWriter struct{}

func (p *NilPanicWriter) Write(b []byte) (int, error) { panic(&runtime.PanicNilError{}) }

// &runtime.PanicNilError{} instead of nil to prevent VSC problem "panic with nil value"

type ZeroPanicWriter struct{}

func (p *ZeroPanicWriter) Write(b []byte) (int, error) { panic(0) }

type ErrorWriter struct{}

func (e *ErrorWriter) Write(b []byte) (int, error) { return 0, errors.New(errorStr) }

// FakeWriter collects everything written to it. Safe for concurrent use.
type FakeWriter struct {
	mtx    sync.Mutex
	buffer []byte
	writes int
}

func (f *FakeWriter) Write(b []byte) (int, error) {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.buffer = append(f.buffer, b...)
	f.writes++
	return len(b), nil
}
func (f *FakeWriter) String() string {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	return string(f.buffer)
}
func (f *FakeWriter) Clear() {
	f.mtx.Lock()
	defer f.mtx.Unlock()
	f.buffer = f.buffer[:0]
	f.writes = 0
}

// RecordingSink keeps a copy of every envelope it receives.
type RecordingSink struct {
	mtx  sync.Mutex
	envs []Envelope
	key  string
}

func (s *RecordingSink) Report(env *Envelope) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.envs = append(s.envs, *env)
	return nil
}

func (s *RecordingSink) Envelopes() []Envelope {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return append([]Envelope(nil), s.envs...)
}

type KeyedRecordingSink struct {
	RecordingSink
}

func (s *KeyedRecordingSink) SinkKey() string { return s.key }

type PanicSink struct{}

func (p *PanicSink) Report(*Envelope) error { panic(panicStr) }

type ErrorSink struct{}

func (e *ErrorSink) Report(*Envelope) error { return errors.New(errorStr) }

var ansiSeq = regexp.MustCompile("\x1b\\[[0-9;]*m")

func stripANSI(s string) string {
	return ansiSeq.ReplaceAllString(s, "")
}

// Registry with a frozen clock (uptime is always 1.5 seconds), a fallback
// collecting sink failures and an exit function that only counts calls.
func newTestRegistry(ferr *FakeWriter, exits *int) *Registry {
	if ferr == nil {
		ferr = &FakeWriter{}
	}
	r := NewWithFallback(ferr)
	start := r.clock.start
	r.clock.now = func() time.Time { return start.Add(1500 * time.Millisecond) }
	r.SetExitFunc(func() {
		if exits != nil {
			*exits += 1
		}
	})
	return r
}
