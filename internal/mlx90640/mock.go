package mlx90640

import (
	"bytes"
	"errors"
	"sync"
)

// TestableLink implements Link with configurable behaviour for testing.
// It provides fine-grained control over pending data, reads and errors.
type TestableLink struct {
	mu sync.Mutex

	// ReadBuffer holds data to be returned by ReadExactly calls
	ReadBuffer *bytes.Buffer

	// ReadError is returned by the next ReadExactly call if set
	ReadError error

	// CloseError is returned by Close if set
	CloseError error

	// Closed indicates whether Close was called
	Closed bool

	// PendingCalls records the number of BytesPending calls
	PendingCalls int

	// ReadCalls records the number of ReadExactly calls
	ReadCalls int
}

// NewTestableLink creates a new TestableLink for testing.
func NewTestableLink() *TestableLink {
	return &TestableLink{ReadBuffer: bytes.NewBuffer(nil)}
}

// BytesPending reports whether the read buffer holds any data.
func (l *TestableLink) BytesPending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.PendingCalls++
	return !l.Closed && l.ReadBuffer.Len() > 0
}

// ReadExactly drains up to len(buf) bytes from the read buffer, simulating
// errors when configured.
func (l *TestableLink) ReadExactly(buf []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ReadCalls++

	if l.Closed {
		return 0, errors.New("sensor link closed")
	}
	if l.ReadError != nil {
		err := l.ReadError
		l.ReadError = nil
		return 0, err
	}
	n, _ := l.ReadBuffer.Read(buf)
	return n, nil
}

// Close marks the link as closed.
func (l *TestableLink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Closed = true
	return l.CloseError
}

// AddFrame queues data to be returned by subsequent ReadExactly calls.
func (l *TestableLink) AddFrame(data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ReadBuffer.Write(data)
}

// Reset clears all buffers and resets state.
func (l *TestableLink) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ReadBuffer.Reset()
	l.ReadError = nil
	l.CloseError = nil
	l.Closed = false
	l.PendingCalls = 0
	l.ReadCalls = 0
}
