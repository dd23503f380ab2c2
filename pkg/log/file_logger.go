package log

import (
	"os"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// FileOption configures a FileLogger.
type FileOption func(*FileLogger)

// WithDeviceID stamps id onto every event that does not already carry a
// device identifier.
func WithDeviceID(id string) FileOption {
	return func(l *FileLogger) { l.deviceID = id }
}

// WithGateSync flushes the file to disk after every gate event, so the
// record of a PIN or button decision survives a power cut.
func WithGateSync() FileOption {
	return func(l *FileLogger) { l.syncGates = true }
}

// FileLogger appends events to a .glog file as a stream of CBOR records.
// Safe for concurrent use.
type FileLogger struct {
	mu        sync.Mutex
	file      *os.File
	enc       *cbor.Encoder
	deviceID  string
	syncGates bool
	written   int
	err       error
	closed    bool
}

// NewFileLogger opens path for appending, creating it owner-readable only.
func NewFileLogger(path string, opts ...FileOption) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	l := &FileLogger{file: f, enc: NewEncoder(f)}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Log appends event. Write failures never reach the caller; the first one
// is kept for Err.
func (l *FileLogger) Log(event Event) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if event.DeviceID == "" {
		event.DeviceID = l.deviceID
	}
	if err := l.enc.Encode(event); err != nil {
		l.fail(err)
		return
	}
	l.written++
	if l.syncGates && event.Gate != nil {
		if err := l.file.Sync(); err != nil {
			l.fail(err)
		}
	}
}

func (l *FileLogger) fail(err error) {
	if l.err == nil {
		l.err = err
	}
}

// Written returns the number of events appended so far.
func (l *FileLogger) Written() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written
}

// Err returns the first write error, if any.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close flushes and closes the file. Later calls to Log are dropped and
// later calls to Close return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	if err := l.file.Sync(); err != nil {
		l.file.Close()
		return err
	}
	return l.file.Close()
}

var _ Logger = (*FileLogger)(nil)
