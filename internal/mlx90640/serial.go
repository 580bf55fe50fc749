package mlx90640

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

const (
	// pollTimeout bounds the non-blocking pending check. The sensor streams
	// continuously at 115200 baud, so a fresh frame begins within a few
	// milliseconds of the previous one ending.
	pollTimeout = time.Millisecond

	// frameTimeout bounds the read of one full frame. 1544 bytes at 115200
	// baud take ~135ms on the wire; anything slower means a stalled sensor
	// and the partial frame is discarded.
	frameTimeout = 250 * time.Millisecond
)

// SerialLink is a Link over a hardware serial port.
type SerialLink struct {
	port  serial.Port
	stash []byte
	peek  [64]byte
}

// OpenSerialLink opens the serial port at path and configures it for the
// MLX90640 module (8N1).
func OpenSerialLink(path string, baudRate int) (*SerialLink, error) {
	mode := &serial.Mode{
		BaudRate: baudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", path, err)
	}
	return &SerialLink{port: port}, nil
}

// BytesPending polls the port with a short read timeout. Any bytes that
// arrive during the poll are stashed for the next ReadExactly call.
func (l *SerialLink) BytesPending() bool {
	if len(l.stash) > 0 {
		return true
	}
	if err := l.port.SetReadTimeout(pollTimeout); err != nil {
		return false
	}
	n, err := l.port.Read(l.peek[:])
	if err != nil || n == 0 {
		return false
	}
	l.stash = append(l.stash, l.peek[:n]...)
	return true
}

// ReadExactly reads up to len(buf) bytes, draining the stash first. A read
// timeout mid-frame yields a short count with a nil error; the caller treats
// that as an incomplete frame.
func (l *SerialLink) ReadExactly(buf []byte) (int, error) {
	total := copy(buf, l.stash)
	if total == len(l.stash) {
		l.stash = l.stash[:0]
	} else {
		l.stash = l.stash[total:]
	}
	if total == len(buf) {
		return total, nil
	}
	if err := l.port.SetReadTimeout(frameTimeout); err != nil {
		return total, fmt.Errorf("set read timeout: %w", err)
	}
	for total < len(buf) {
		n, err := l.port.Read(buf[total:])
		if err != nil {
			return total, err
		}
		if n == 0 {
			// read timeout: the sensor stalled mid-frame
			break
		}
		total += n
	}
	return total, nil
}

// Close closes the serial port.
func (l *SerialLink) Close() error {
	return l.port.Close()
}
