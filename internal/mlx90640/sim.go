package mlx90640

import (
	"math"
	"sync"
	"time"
)

// SimulatedLink is a Link that synthesizes valid sensor frames at a fixed
// interval, for running the pipeline without hardware (dev mode). The scene
// is a 22C ambient field with a warm blob that drifts across the grid, warm
// enough to read as an occupied seat.
type SimulatedLink struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	pending  []byte
	frameIdx int
	closed   bool
}

// NewSimulatedLink creates a simulator emitting one frame per interval.
func NewSimulatedLink(interval time.Duration) *SimulatedLink {
	return &SimulatedLink{interval: interval}
}

// BytesPending queues a fresh synthetic frame once per interval.
func (l *SimulatedLink) BytesPending() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	if now := time.Now(); l.last.IsZero() || now.Sub(l.last) >= l.interval {
		frame, err := EncodeFrame(l.scene())
		if err == nil {
			l.pending = append(l.pending, frame...)
		}
		l.last = now
		l.frameIdx++
	}
	return len(l.pending) > 0
}

// ReadExactly drains queued frame bytes.
func (l *SimulatedLink) ReadExactly(buf []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := copy(buf, l.pending)
	l.pending = l.pending[n:]
	return n, nil
}

// Close stops the simulator.
func (l *SimulatedLink) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// scene builds the synthetic temperature field for the current frame index.
func (l *SimulatedLink) scene() []float64 {
	temps := make([]float64, PixelCount)
	phase := float64(l.frameIdx) * 0.05
	cx := float64(Width)/2 + float64(Width)/3*math.Sin(phase)
	cy := float64(Height)/2 + float64(Height)/4*math.Cos(phase*0.7)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			temps[y*Width+x] = 22.0 + 13.0*math.Exp(-(dx*dx+dy*dy)/18.0)
		}
	}
	return temps
}
