package mlx90640

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// uniformScene returns a grid of identical temperatures with selected
// overrides, keyed by pixel index.
func uniformScene(base float64, overrides map[int]float64) []float64 {
	temps := make([]float64, PixelCount)
	for i := range temps {
		temps[i] = base
	}
	for idx, t := range overrides {
		temps[idx] = t
	}
	return temps
}

func TestEncodeFrameRoundTrip(t *testing.T) {
	temps := uniformScene(25.0, map[int]float64{
		0:              17.23,
		5*Width + 12:   35.0,
		PixelCount - 1: 299.99,
	})

	frame, err := EncodeFrame(temps)
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	if len(frame) != FrameSize {
		t.Fatalf("frame length = %d, want %d", len(frame), FrameSize)
	}
	if err := Validate(frame); err != nil {
		t.Fatalf("synthetic frame did not validate: %v", err)
	}

	var grid Grid
	if _, err := Decode(frame, &grid); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	// fixed-point wire format carries centidegrees, so round-trip error
	// must stay within 0.01C
	if diff := cmp.Diff(temps, grid[:], cmpopts.EquateApprox(0, 0.01)); diff != "" {
		t.Errorf("decoded grid mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeFrameRejectsWrongPixelCount(t *testing.T) {
	if _, err := EncodeFrame(make([]float64, PixelCount-1)); err == nil {
		t.Error("expected error for short temperature slice")
	}
}

func TestDecodeSelfTemperature(t *testing.T) {
	frame, err := EncodeFrame(uniformScene(25.0, nil))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	// the trailing word is shared between checksum and self-temperature in
	// the vendor layout, so the decoded self-temp must equal checksum/100
	var grid Grid
	selfTemp, err := Decode(frame, &grid)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	want := float64(Checksum(frame)) / 100.0
	if selfTemp != want {
		t.Errorf("selfTemp = %v, want %v", selfTemp, want)
	}
}

func TestValidateAcceptsGoodFrame(t *testing.T) {
	frame, err := EncodeFrame(uniformScene(22.5, nil))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	if err := Validate(frame); err != nil {
		t.Errorf("Validate rejected a good frame: %v", err)
	}
}

func TestValidateRejectsBadHeader(t *testing.T) {
	frame, err := EncodeFrame(uniformScene(22.5, nil))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	frame[0] = 0x00
	frame[1] = 0x00

	err = Validate(frame)
	if !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("Validate = %v, want ErrInvalidHeader", err)
	}
}

func TestValidateHeaderCheckedBeforeChecksum(t *testing.T) {
	// a frame that fails both checks must report the header first
	frame, err := EncodeFrame(uniformScene(22.5, nil))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	frame[0] = 0x00
	frame[FrameSize-1] ^= 0xFF

	err = Validate(frame)
	if !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("Validate = %v, want ErrInvalidHeader", err)
	}
}

func TestValidateRejectsCorruptChecksumField(t *testing.T) {
	frame, err := EncodeFrame(uniformScene(22.5, nil))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	frame[FrameSize-2] ^= 0x01

	err = Validate(frame)
	if !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("Validate = %v, want ErrChecksumMismatch", err)
	}
}

func TestValidateDetectsSinglePayloadBitFlips(t *testing.T) {
	base, err := EncodeFrame(uniformScene(24.0, map[int]float64{3: 31.5}))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	// flip one bit at a spread of payload offsets, leaving the embedded
	// checksum untouched
	for _, offset := range []int{4, 5, 100, 777, 1200, FrameSize - 3} {
		for bit := 0; bit < 8; bit++ {
			frame := make([]byte, FrameSize)
			copy(frame, base)
			frame[offset] ^= 1 << bit

			err := Validate(frame)
			if !errors.Is(err, ErrChecksumMismatch) {
				t.Errorf("offset %d bit %d: Validate = %v, want ErrChecksumMismatch",
					offset, bit, err)
			}
		}
	}
}

func TestValidateRejectsShortFrame(t *testing.T) {
	err := Validate(make([]byte, FrameSize-1))
	if !errors.Is(err, ErrIncompleteFrame) {
		t.Errorf("Validate = %v, want ErrIncompleteFrame", err)
	}
}

func TestDeclaredLength(t *testing.T) {
	frame, err := EncodeFrame(uniformScene(22.5, nil))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	if got := DeclaredLength(frame); got != PixelCount*2 {
		t.Errorf("DeclaredLength = %d, want %d", got, PixelCount*2)
	}
}

func TestChecksumMatchesReference(t *testing.T) {
	// tiny hand-checked case layered over a zero frame: words are summed
	// little-endian, mod 65536
	frame := make([]byte, FrameSize)
	frame[0] = StartFlag
	frame[1] = StartFlag
	binary.LittleEndian.PutUint16(frame[4:], 0xFFFF)
	binary.LittleEndian.PutUint16(frame[6:], 0x0002)

	var want uint16
	for _, w := range []uint16{0x5A5A, 0xFFFF, 0x0002} {
		want += w
	}
	if got := Checksum(frame); got != want {
		t.Errorf("Checksum = 0x%04X, want 0x%04X", got, want)
	}
}

func TestGridAt(t *testing.T) {
	var grid Grid
	grid[7*Width+3] = 36.5
	if got := grid.At(3, 7); got != 36.5 {
		t.Errorf("At(3,7) = %v, want 36.5", got)
	}
}
