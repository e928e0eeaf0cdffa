package log

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileLogger appends CBOR-encoded events to a file.
// It is safe for concurrent use.
type FileLogger struct {
	mu      sync.Mutex
	file    *os.File
	encoder *cbor.Encoder
	closed  bool

	written int
	failed  int
}

// NewFileLogger opens path for appending, creating it with mode 0644.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &FileLogger{file: f, encoder: NewEncoder(f)}, nil
}

// Log writes an event. APDU data beyond MaxAPDUData is cut, so events
// built without NewAPDUEvent stay bounded too. Encoding errors are counted
// and otherwise dropped.
func (l *FileLogger) Log(event Event) {
	if a := event.APDU; a != nil && len(a.Data) > MaxAPDUData {
		cut := *a
		cut.Data = a.Data[:MaxAPDUData]
		cut.Truncated = true
		event.APDU = &cut
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	if err := l.encoder.Encode(event); err != nil {
		l.failed++
		return
	}
	l.written++
}

// Written returns the number of events written and the number that
// failed to encode.
func (l *FileLogger) Written() (written, failed int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written, l.failed
}

// Close flushes the file to disk and closes it. Later calls to Log and
// Close do nothing.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	serr := l.file.Sync()
	if err := l.file.Close(); err != nil {
		return err
	}
	return serr
}

var _ Logger = (*FileLogger)(nil)
