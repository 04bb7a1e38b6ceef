package fluid

import "sync"

// PointerSample is one pointer observation in viewport pixels.
type PointerSample struct {
	X, Y   float32
	DX, DY float32
}

// Mailbox is a one-slot, last-value-wins holder for pointer samples. One
// goroutine publishes, one goroutine takes; Publish overwrites any sample
// that has not been taken yet.
type Mailbox struct {
	mu      sync.Mutex
	sample  PointerSample
	pending bool
}

// Publish stores s, replacing an unconsumed sample.
func (m *Mailbox) Publish(s PointerSample) {
	m.mu.Lock()
	m.sample = s
	m.pending = true
	m.mu.Unlock()
}

// TakeIfPresent returns the pending sample and clears the slot.
func (m *Mailbox) TakeIfPresent() (PointerSample, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.pending {
		return PointerSample{}, false
	}
	m.pending = false
	return m.sample, true
}

// pointerTracker derives deltas from absolute positions. It is owned by the
// publishing side.
type pointerTracker struct {
	lastX  float32
	lastY  float32
	primed bool
}

// observe records a position and returns the sample to publish. The first
// observation has a zero delta.
func (t *pointerTracker) observe(x, y float32) PointerSample {
	s := PointerSample{X: x, Y: y}
	if t.primed {
		s.DX = x - t.lastX
		s.DY = y - t.lastY
	}
	t.lastX, t.lastY = x, y
	t.primed = true
	return s
}
