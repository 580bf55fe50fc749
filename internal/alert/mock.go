package alert

import (
	"sync"
	"time"
)

// Transition records one actuator state change.
type Transition struct {
	On bool
	At time.Time
}

// MockActuator implements Actuator for testing, recording every transition.
type MockActuator struct {
	mu sync.Mutex

	// Now supplies timestamps for recorded transitions; defaults to
	// time.Now when nil.
	Now func() time.Time

	// SetError is returned by the next Set call if set
	SetError error

	transitions []Transition
}

// Set records the transition, simulating an error when configured.
func (m *MockActuator) Set(on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetError != nil {
		err := m.SetError
		m.SetError = nil
		return err
	}
	at := time.Now()
	if m.Now != nil {
		at = m.Now()
	}
	m.transitions = append(m.transitions, Transition{On: on, At: at})
	return nil
}

// Transitions returns all recorded state changes.
func (m *MockActuator) Transitions() []Transition {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Transition, len(m.transitions))
	copy(out, m.transitions)
	return out
}

// Pulses counts completed high-low pairs.
func (m *MockActuator) Pulses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for i := 0; i+1 < len(m.transitions); i++ {
		if m.transitions[i].On && !m.transitions[i+1].On {
			n++
		}
	}
	return n
}

// Reset clears recorded transitions.
func (m *MockActuator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = nil
	m.SetError = nil
}
