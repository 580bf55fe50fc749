package render

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"
)

// Display is the surface a rendered frame is pushed to. Implementations own
// the low-level pixel transfer; the renderer never touches hardware.
type Display interface {
	// Present pushes one complete frame to the surface.
	Present(img image.Image) error
}

// FileDisplay writes each presented frame as a PNG at a fixed path,
// overwriting the previous frame. Used in dev mode and on the bench, where
// the panel is a file watched by an image viewer.
type FileDisplay struct {
	Path string
}

// Present encodes the frame to a temporary file and renames it into place so
// watchers never observe a half-written image.
func (d *FileDisplay) Present(img image.Image) error {
	tmp := d.Path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, d.Path); err != nil {
		return fmt.Errorf("publish frame: %w", err)
	}
	return nil
}

// NullDisplay discards frames.
type NullDisplay struct{}

// Present drops the frame.
func (NullDisplay) Present(image.Image) error { return nil }

// MockDisplay implements Display for testing, retaining the last frame.
type MockDisplay struct {
	mu sync.Mutex

	// PresentError is returned by the next Present call if set
	PresentError error

	last  image.Image
	count int
}

// Present records the frame, simulating an error when configured.
func (m *MockDisplay) Present(img image.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PresentError != nil {
		err := m.PresentError
		m.PresentError = nil
		return err
	}
	m.last = img
	m.count++
	return nil
}

// Last returns the most recently presented frame, nil if none.
func (m *MockDisplay) Last() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Count returns the number of frames presented.
func (m *MockDisplay) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.count
}
