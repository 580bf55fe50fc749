// Package mlx90640 implements the serial wire protocol of the MLX90640
// thermal sensor module: frame acquisition, validation and decoding.
//
// The sensor streams fixed-length 1544-byte frames:
//
//	[0,2)        header flags, both bytes 0x5A
//	[2,4)        declared payload length (little-endian u16, unenforced)
//	[4,1540)     768 pixel samples (32x24, row-major), little-endian u16,
//	             value/100 = degrees Celsius
//	[1542,1544)  16-bit modular sum of all preceding little-endian words;
//	             the same word doubles as the sensor self-temperature
//	             (value/100 = degrees Celsius) in the vendor layout
package mlx90640

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Frame layout constants.
const (
	FrameSize    = 1544 // total frame length in bytes
	StartFlag    = 0x5A // header sentinel, repeated in bytes 0 and 1
	Width        = 32   // sensor resolution width in pixels
	Height       = 24   // sensor resolution height in pixels
	PixelCount   = Width * Height
	HeaderSize   = 4 // 2 flag bytes + 2-byte declared length
	ChecksumSize = 2
)

// Frame rejection reasons. All are cycle-local and non-fatal: the caller
// discards the frame and polls for the next one.
var (
	// ErrNoData reports that no bytes were pending on the sensor link.
	// It marks a normal idle cycle, not a failure.
	ErrNoData = errors.New("no sensor data pending")

	// ErrIncompleteFrame reports that fewer than FrameSize bytes were read.
	ErrIncompleteFrame = errors.New("incomplete frame")

	// ErrInvalidHeader reports a header sentinel mismatch.
	ErrInvalidHeader = errors.New("invalid frame header")

	// ErrChecksumMismatch reports an integrity check failure.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Grid is a row-major Width x Height grid of temperatures in degrees Celsius.
type Grid [PixelCount]float64

// At returns the temperature at pixel (x, y).
func (g *Grid) At(x, y int) float64 {
	return g[y*Width+x]
}

// Checksum computes the 16-bit modular sum of all little-endian words in
// frame[0:FrameSize-2]. uint16 arithmetic supplies the mod-65536 wrap.
func Checksum(frame []byte) uint16 {
	var sum uint16
	for i := 0; i < FrameSize-ChecksumSize; i += 2 {
		sum += binary.LittleEndian.Uint16(frame[i : i+2])
	}
	return sum
}

// Validate checks a raw frame against the wire protocol. The header sentinel
// is checked before the checksum so corrupt frames are rejected as cheaply as
// possible. A nil return means the frame may be decoded.
func Validate(frame []byte) error {
	if len(frame) != FrameSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrIncompleteFrame, len(frame), FrameSize)
	}
	if frame[0] != StartFlag || frame[1] != StartFlag {
		return fmt.Errorf("%w: flags 0x%02X 0x%02X, want 0x%02X 0x%02X",
			ErrInvalidHeader, frame[0], frame[1], StartFlag, StartFlag)
	}
	received := binary.LittleEndian.Uint16(frame[FrameSize-ChecksumSize:])
	if computed := Checksum(frame); computed != received {
		return fmt.Errorf("%w: computed 0x%04X, received 0x%04X",
			ErrChecksumMismatch, computed, received)
	}
	return nil
}

// DeclaredLength returns the payload length field at bytes [2,4). The sensor
// populates it but the protocol does not enforce it; it is exposed for
// diagnostics only.
func DeclaredLength(frame []byte) uint16 {
	return binary.LittleEndian.Uint16(frame[2:4])
}

// Decode converts a validated frame into grid, a row-major grid of Celsius
// values, and returns the sensor board's self-temperature. Pixel samples are
// unsigned 16-bit fixed-point values in centidegrees. The self-temperature is
// decoded from the trailing word, which the vendor layout shares with the
// checksum.
//
// Decode is a pure transformation: it applies no clamping and assumes frame
// has already passed Validate.
func Decode(frame []byte, grid *Grid) (selfTemp float64, err error) {
	if len(frame) != FrameSize {
		return 0, fmt.Errorf("%w: got %d bytes, want %d", ErrIncompleteFrame, len(frame), FrameSize)
	}
	for i := 0; i < PixelCount; i++ {
		raw := binary.LittleEndian.Uint16(frame[HeaderSize+2*i:])
		grid[i] = float64(raw) / 100.0
	}
	selfTemp = float64(binary.LittleEndian.Uint16(frame[FrameSize-ChecksumSize:])) / 100.0
	return selfTemp, nil
}

// EncodeFrame builds a wire frame carrying the given row-major Celsius
// temperatures. Values are rounded to centidegrees and the trailing checksum
// word is computed over the assembled frame, so the result always passes
// Validate. Used by the frame simulator and by tests.
func EncodeFrame(temps []float64) ([]byte, error) {
	if len(temps) != PixelCount {
		return nil, fmt.Errorf("need %d temperatures, got %d", PixelCount, len(temps))
	}
	frame := make([]byte, FrameSize)
	frame[0] = StartFlag
	frame[1] = StartFlag
	binary.LittleEndian.PutUint16(frame[2:4], uint16(PixelCount*2))
	for i, t := range temps {
		binary.LittleEndian.PutUint16(frame[HeaderSize+2*i:], uint16(math.Round(t*100)))
	}
	binary.LittleEndian.PutUint16(frame[FrameSize-ChecksumSize:], Checksum(frame))
	return frame, nil
}
