package mlx90640

import (
	"fmt"
	"io"
)

// Link is the minimal interface the frame reader needs from the sensor
// transport. This abstraction enables unit testing without real serial
// hardware.
type Link interface {
	// BytesPending reports whether the sensor has produced data since the
	// last read. It must not block beyond a short poll interval.
	BytesPending() bool

	// ReadExactly reads up to len(buf) bytes into buf. It returns the
	// number of bytes read; a short count without an error means the
	// transport ran dry mid-frame.
	ReadExactly(buf []byte) (int, error)

	io.Closer
}

// Reader pulls fixed-length frames from a sensor link.
type Reader struct {
	link Link
}

// NewReader creates a Reader over the given sensor link.
func NewReader(link Link) *Reader {
	return &Reader{link: link}
}

// AcquireFrame fills buf with one complete frame. It returns ErrNoData
// immediately when the link has nothing pending, and ErrIncompleteFrame when
// fewer than FrameSize bytes could be read. Partial frames are discarded,
// never buffered across calls.
func (r *Reader) AcquireFrame(buf []byte) error {
	if len(buf) != FrameSize {
		return fmt.Errorf("frame buffer is %d bytes, want %d", len(buf), FrameSize)
	}
	if !r.link.BytesPending() {
		return ErrNoData
	}
	n, err := r.link.ReadExactly(buf)
	if err != nil {
		return fmt.Errorf("read frame: %w", err)
	}
	if n != FrameSize {
		return fmt.Errorf("%w: read %d of %d bytes", ErrIncompleteFrame, n, FrameSize)
	}
	return nil
}
