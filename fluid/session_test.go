package fluid

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestSession(t *testing.T, n int, vp Viewport) *Session {
	t.Helper()
	p := DefaultParams()
	p.Resolution = n
	s, err := NewSession(p, vp, WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// nullSurface discards every draw call.
type nullSurface struct{}

func (nullSurface) Clear()                  {}
func (nullSurface) FillRect(Rect, float32) {}

func TestSingleInjectionScenario(t *testing.T) {
	s := newTestSession(t, 8, Viewport{Width: 80, Height: 80})
	// First sample: zero delta, lands in cell (4, 4).
	s.PointerMoved(45, 45)
	require.NoError(t, s.Step())

	g := s.grid
	assert.InDelta(t, 2.0*0.97, g.density[g.Index(4, 4)], 1e-6)
	for j := 0; j < 8; j++ {
		for i := 0; i < 8; i++ {
			if i >= 3 && i <= 5 && j >= 3 && j <= 5 {
				continue
			}
			assert.Zero(t, g.density[g.Index(i, j)], "cell %d,%d", i, j)
		}
	}
	for i := range g.u {
		assert.Zero(t, g.u[i])
		assert.Zero(t, g.v[i])
	}
}

func TestDecayMonotonic(t *testing.T) {
	s := newTestSession(t, 16, Viewport{Width: 160, Height: 160})
	strokes := []struct {
		x, y   int
		dx, dy float32
	}{
		{5, 5, 3, 1},
		{6, 5, 4, 2},
		{7, 6, 5, -2},
		{9, 8, -3, 4},
	}
	for _, st := range strokes {
		require.NoError(t, s.Splat(st.x, st.y, 2, 0.5*st.dx, 0.5*st.dy))
		require.NoError(t, s.Step())
	}

	start := s.Stats()
	prev := start
	for k := 0; k < 80; k++ {
		require.NoError(t, s.Step())
		cur := s.Stats()
		require.Less(t, cur.Mass, prev.Mass, "step %d", k)
		require.Less(t, cur.Speed, prev.Speed, "step %d", k)
		prev = cur
	}
	assert.Less(t, prev.Mass, 0.15*start.Mass)
	assert.Less(t, prev.Speed, 0.3*start.Speed)
}

func TestEmptySessionStaysEmpty(t *testing.T) {
	s := newTestSession(t, 8, Viewport{Width: 64, Height: 64})
	for k := 0; k < 5; k++ {
		require.NoError(t, s.Step())
	}
	st := s.Stats()
	assert.Zero(t, st.Mass)
	assert.Zero(t, st.Speed)
	assert.Equal(t, uint64(5), st.Frames)
}

func TestPointerLastValueWins(t *testing.T) {
	p := DefaultParams()
	p.Resolution = 8
	p.ForceScale = 0
	s, err := NewSession(p, Viewport{Width: 80, Height: 80})
	require.NoError(t, err)
	defer s.Close()

	s.PointerMoved(5, 5)
	s.PointerMoved(15, 25)
	s.PointerMoved(55, 55)
	require.NoError(t, s.Step())

	g := s.grid
	assert.InDelta(t, 2.0*0.97, sumField(g.density), 1e-5, "exactly one injection per step")
	assert.InDelta(t, 2.0*0.97, g.density[g.Index(5, 5)], 1e-6)
	_, pending := s.mailbox.TakeIfPresent()
	assert.False(t, pending)

	require.NoError(t, s.Step())
	assert.InDelta(t, 2.0*0.97*0.97, sumField(g.density), 1e-5, "the mailbox was cleared by the first step")
}

func TestPointerDeltaDrivesVelocity(t *testing.T) {
	s := newTestSession(t, 8, Viewport{Width: 80, Height: 80})
	s.PointerMoved(40, 40)
	_, ok := s.mailbox.TakeIfPresent()
	require.True(t, ok)
	s.PointerMoved(45, 42)

	sample, ok := s.mailbox.TakeIfPresent()
	require.True(t, ok)
	s.applyPointer(sample)
	g := s.grid
	assert.Equal(t, float32(2.5), g.u[g.Index(4, 4)])
	assert.Equal(t, float32(1.0), g.v[g.Index(4, 4)])
}

func TestPointerOffscreenSaturates(t *testing.T) {
	s := newTestSession(t, 8, Viewport{Width: 80, Height: 80})
	s.PointerMoved(-500, 1e9)
	sample, ok := s.mailbox.TakeIfPresent()
	require.True(t, ok)
	s.applyPointer(sample)
	g := s.grid
	assert.Equal(t, float32(2), g.density[g.Index(0, 7)])
}

func TestResizeIndependence(t *testing.T) {
	small := newTestSession(t, 16, Viewport{Width: 320, Height: 200})
	large := newTestSession(t, 16, Viewport{Width: 1920, Height: 1080})

	run := func(s *Session, resize bool) {
		for k := 0; k < 16; k++ {
			require.NoError(t, s.Splat(3+k%8, 8, 1.5, 0.4, -0.2))
			if resize && k%3 == 0 {
				s.Resize(float32(400+k*10), float32(300+k*5))
			}
			require.NoError(t, s.Step())
		}
	}
	run(small, false)
	run(large, true)

	for name, pair := range map[string][2]Field{
		"density": {small.grid.density, large.grid.density},
		"u":       {small.grid.u, large.grid.u},
		"v":       {small.grid.v, large.grid.v},
	} {
		if diff := cmp.Diff(pair[0], pair[1]); diff != "" {
			t.Errorf("%s differs between viewports (-small +large):\n%s", name, diff)
		}
	}

	a := &recordingSurface{}
	b := &recordingSurface{}
	require.NoError(t, small.Render(a))
	require.NoError(t, large.Render(b))
	require.Equal(t, len(a.rects), len(b.rects))
	require.NotEmpty(t, a.rects)
	assert.NotEqual(t, a.rects[0].r, b.rects[0].r)
	assert.Equal(t, a.rects[0].alpha, b.rects[0].alpha)
}

func TestResizeIgnoresEmptyViewport(t *testing.T) {
	s := newTestSession(t, 8, Viewport{Width: 80, Height: 60})
	s.Resize(0, 100)
	s.Resize(100, -1)
	assert.Equal(t, Viewport{Width: 80, Height: 60}, s.Viewport())
	s.Resize(160, 120)
	assert.Equal(t, Viewport{Width: 160, Height: 120}, s.Viewport())
}

func TestPhases(t *testing.T) {
	s := newTestSession(t, 8, Viewport{Width: 80, Height: 80})
	assert.Equal(t, Idle, s.Phase())
	require.NoError(t, s.Step())
	assert.Equal(t, Stepping, s.Phase())
	require.NoError(t, s.Render(nullSurface{}))
	assert.Equal(t, Rendered, s.Phase())
	require.NoError(t, s.Tick(nullSurface{}))
	assert.Equal(t, Idle, s.Phase())
}

func TestClosedSessionRefusesWork(t *testing.T) {
	p := DefaultParams()
	p.Resolution = 8
	s, err := NewSession(p, Viewport{Width: 10, Height: 10})
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Step(), ErrClosed)
	assert.ErrorIs(t, s.Render(nullSurface{}), ErrClosed)
	assert.ErrorIs(t, s.Tick(nullSurface{}), ErrClosed)
	assert.ErrorIs(t, s.Splat(1, 1, 1, 0, 0), ErrClosed)
	assert.ErrorIs(t, s.Reset(), ErrClosed)
	assert.Zero(t, s.Stats().Mass)
}

func TestReset(t *testing.T) {
	s := newTestSession(t, 8, Viewport{Width: 80, Height: 80})
	require.NoError(t, s.Splat(4, 4, 2, 1, 1))
	s.PointerMoved(10, 10)
	require.NoError(t, s.Reset())
	require.NoError(t, s.Step())
	st := s.Stats()
	assert.Zero(t, st.Mass)
	assert.Zero(t, st.Speed)
}

func TestNewSessionValidates(t *testing.T) {
	p := DefaultParams()
	p.Iterations = 0
	_, err := NewSession(p, Viewport{Width: 10, Height: 10})
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = NewSession(DefaultParams(), Viewport{Width: 10})
	assert.ErrorIs(t, err, ErrInvalidViewport)
}

func TestSessionIDs(t *testing.T) {
	a := newTestSession(t, 4, Viewport{Width: 4, Height: 4})
	b := newTestSession(t, 4, Viewport{Width: 4, Height: 4})
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())

	p := DefaultParams()
	p.Resolution = 4
	c, err := NewSession(p, Viewport{Width: 4, Height: 4}, WithID("fixed"))
	require.NoError(t, err)
	assert.Equal(t, "fixed", c.ID())
}
