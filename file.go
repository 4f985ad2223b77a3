package logvisor

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

// FileOptions tune a FileSink.
type FileOptions struct {
	// KeepOpen holds the file handle between reports instead of reopening
	// the file for every line.
	KeepOpen bool
}

// FileSink appends one plain-text line per report to a file. By default the
// file is opened in append mode and closed around every line, so external
// rotation, truncation or deletion between reports is tolerated.
type FileSink struct {
	mtx    sync.Mutex
	path   string
	file   *os.File // open handle in KeepOpen mode, nil otherwise
	msgbuf *bytes.Buffer
	opts   FileOptions
}

// NewFileSink creates a sink for path. The file is not touched until the
// first report.
func NewFileSink(path string, opts FileOptions) *FileSink {
	return &FileSink{
		path:   path,
		msgbuf: bytes.NewBuffer(make([]byte, 0, DEFAULT_OUT_BUFF)),
		opts:   opts,
	}
}

// Path of the target file.
func (s *FileSink) Path() string {
	return s.path
}

// SinkKey implements KeyedSink: file sinks are unique per path.
func (s *FileSink) SinkKey() string {
	return FILE_SINK_KEY_PREFIX + s.path
}

// Report implements Sink. The whole line goes out in one Write on an
// O_APPEND descriptor, so concurrent writers never tear it.
func (s *FileSink) Report(env *Envelope) (err error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	f := s.file
	if f == nil {
		f, err = os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, DEFAULT_FILE_PERM)
		if err != nil {
			return fmt.Errorf("error opening log file: %w", err)
		}
		if s.opts.KeepOpen {
			s.file = f
		} else {
			defer func() {
				if e := f.Close(); e != nil && err == nil {
					err = fmt.Errorf("error closing log file: %w", e)
				}
			}()
		}
	}
	buildTextMessage(s.msgbuf, env, false)
	if n, e := s.msgbuf.WriteTo(f); e != nil {
		err = fmt.Errorf("error writing log file %s (%d bytes written): %w", s.path, n, e)
	}
	return err
}

// Close releases the handle held in KeepOpen mode. The sink stays usable:
// the next report reopens the file.
func (s *FileSink) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
