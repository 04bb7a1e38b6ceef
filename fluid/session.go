package fluid

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrClosed is returned when a released session is stepped or rendered.
var ErrClosed = errors.New("fluid session closed")

// Phase is the position of a session in its per-frame cycle.
type Phase int

const (
	Idle Phase = iota
	Stepping
	Rendered
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Stepping:
		return "stepping"
	case Rendered:
		return "rendered"
	}
	return "unknown"
}

// Session owns one simulation: its grid, the pointer mailbox and the
// screen-space mapping. Step and Render must be called from one goroutine;
// PointerMoved may be called from another.
type Session struct {
	id       string
	params   Params
	grid     *Grid
	mailbox  Mailbox
	tracker  pointerTracker
	viewport Viewport
	renderer Renderer
	logger   *zap.Logger

	phase  Phase
	frames uint64
	rects  int
	closed bool
}

// Option customizes a Session at construction.
type Option func(*Session)

// WithLogger attaches a logger; sessions log nothing by default.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// NewSession validates p and vp and allocates the simulation buffers.
func NewSession(p Params, vp Viewport, opts ...Option) (*Session, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := vp.validate(); err != nil {
		return nil, err
	}
	s := &Session{
		id:       uuid.NewString(),
		params:   p,
		grid:     newGrid(p.Resolution),
		viewport: vp,
		renderer: newRenderer(p),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("session", s.id))
	s.logger.Info("fluid session started",
		zap.Int("resolution", p.Resolution),
		zap.Float32("width", vp.Width),
		zap.Float32("height", vp.Height),
		zap.Int("iterations", p.Iterations))
	return s, nil
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Params returns the parameters the session was built with.
func (s *Session) Params() Params { return s.params }

// Viewport returns the current screen-space mapping.
func (s *Session) Viewport() Viewport { return s.viewport }

// Phase reports where the session is in its frame cycle.
func (s *Session) Phase() Phase { return s.phase }

// PointerMoved records an absolute pointer position in viewport pixels and
// leaves it for the next Step. Only the latest position before a step is
// applied.
func (s *Session) PointerMoved(x, y float32) {
	s.mailbox.Publish(s.tracker.observe(x, y))
}

// Resize updates the screen-space mapping. The grid is untouched.
func (s *Session) Resize(width, height float32) {
	vp := Viewport{Width: width, Height: height}
	if err := vp.validate(); err != nil {
		s.logger.Warn("ignoring resize", zap.Error(err))
		return
	}
	if vp == s.viewport {
		return
	}
	s.viewport = vp
	s.logger.Debug("viewport resized", zap.Float32("width", width), zap.Float32("height", height))
}

// Splat adds dye and velocity directly at grid cell (x, y).
func (s *Session) Splat(x, y int, dye, du, dv float32) error {
	if s.closed {
		return ErrClosed
	}
	s.grid.inject(x, y, dye, du, dv)
	return nil
}

// Reset clears every field and any pending pointer sample.
func (s *Session) Reset() error {
	if s.closed {
		return ErrClosed
	}
	s.grid.reset()
	s.mailbox.TakeIfPresent()
	s.phase = Idle
	s.logger.Debug("fluid session reset")
	return nil
}

// Step consumes pending pointer input and advances the simulation by one
// timestep.
func (s *Session) Step() error {
	if s.closed {
		return ErrClosed
	}
	s.phase = Stepping
	if sample, ok := s.mailbox.TakeIfPresent(); ok {
		s.applyPointer(sample)
	}
	s.grid.step(s.params)
	s.frames++
	return nil
}

// Render draws the density field into dst.
func (s *Session) Render(dst Surface) error {
	if s.closed {
		return ErrClosed
	}
	s.rects = s.renderer.Render(dst, s.grid, s.grid.density, s.viewport)
	s.phase = Rendered
	return nil
}

// Tick runs one Step followed by one Render and returns to Idle.
func (s *Session) Tick(dst Surface) error {
	if err := s.Step(); err != nil {
		return err
	}
	if err := s.Render(dst); err != nil {
		return fmt.Errorf("render frame %d: %w", s.frames, err)
	}
	s.phase = Idle
	return nil
}

// Stats summarizes the fields after the last step.
func (s *Session) Stats() Stats {
	st := Stats{Frames: s.frames, Rects: s.rects}
	if s.closed {
		return st
	}
	g := s.grid
	st.Mass = sumField(g.density)
	st.Speed = sumAbs(g.u) + sumAbs(g.v)
	st.MeanDivergence = g.meanDivergence(g.u, g.v)
	return st
}

// Close releases the buffers. Later calls to Step or Render fail with
// ErrClosed. Close is idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.grid.release()
	s.mailbox.TakeIfPresent()
	s.phase = Idle
	s.logger.Info("fluid session closed", zap.Uint64("frames", s.frames))
	return nil
}
