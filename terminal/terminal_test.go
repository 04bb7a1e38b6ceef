package terminal

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"fluidbg/fluid"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(cols, rows)
	return s
}

func newSession(t *testing.T, cols, rows int) *fluid.Session {
	t.Helper()
	p := fluid.DefaultParams()
	p.Resolution = 16
	s, err := fluid.NewSession(p, fluid.Viewport{Width: float32(cols), Height: float32(rows)},
		fluid.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return s
}

func TestSurfaceBlendsAndFlushes(t *testing.T) {
	screen := newSimScreen(t, 10, 4)
	defer screen.Fini()

	surf := NewSurface(screen, white, 1)
	cols, rows := surf.Size()
	require.Equal(t, 10, cols)
	require.Equal(t, 4, rows)

	surf.FillRect(fluid.Rect{X: 0, Y: 0, W: 3, H: 2}, 0.5)
	surf.FillRect(fluid.Rect{X: 2, Y: 1, W: 3, H: 2}, 0.5)
	assert.InDelta(t, 0.5, surf.Intensity(0, 0), 1e-6)
	assert.InDelta(t, 0.75, surf.Intensity(2, 1), 1e-6)
	assert.Zero(t, surf.Intensity(9, 3))
	assert.Zero(t, surf.Intensity(-1, 0))

	surf.Flush()
	cells, w, _ := screen.GetContents()
	require.Equal(t, 10, w)
	blank := cells[3*w+9]
	lit := cells[1*w+2]
	require.NotEmpty(t, lit.Runes)
	assert.NotEqual(t, ' ', lit.Runes[0])
	if len(blank.Runes) > 0 {
		assert.Equal(t, ' ', blank.Runes[0])
	}

	surf.Clear()
	assert.Zero(t, surf.Intensity(2, 1))
}

func TestSurfaceClipsOutside(t *testing.T) {
	screen := newSimScreen(t, 4, 4)
	defer screen.Fini()
	surf := NewSurface(screen, white, 0.5)
	assert.NotPanics(t, func() {
		surf.FillRect(fluid.Rect{X: -5, Y: -5, W: 6, H: 6}, 1)
		surf.FillRect(fluid.Rect{X: 10, Y: 10, W: 2, H: 2}, 1)
	})
	assert.InDelta(t, 0.5, surf.Intensity(0, 0), 1e-6)
	assert.Zero(t, surf.Intensity(1, 1))
}

func TestPointerEventsReachSession(t *testing.T) {
	screen := newSimScreen(t, 16, 16)
	defer screen.Fini()
	session := newSession(t, 16, 16)
	defer session.Close()
	d := NewDriver(screen, session, NewSurface(screen, white, 1), Options{})

	assert.True(t, d.consumePointer(tcell.NewEventMouse(8, 8, tcell.ButtonNone, tcell.ModNone)))
	assert.False(t, d.consumePointer(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))

	require.NoError(t, d.frame())
	assert.Greater(t, session.Stats().Mass, 1.0)
	assert.Greater(t, d.surface.Intensity(8, 8), float32(0))
}

func TestHandleEvent(t *testing.T) {
	screen := newSimScreen(t, 16, 16)
	defer screen.Fini()
	session := newSession(t, 16, 16)
	defer session.Close()
	d := NewDriver(screen, session, NewSurface(screen, white, 1), Options{})

	assert.False(t, d.handleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, d.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)))

	assert.True(t, d.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'p', tcell.ModNone)))
	assert.True(t, d.paused)
	require.NoError(t, d.frame())
	assert.Zero(t, session.Stats().Frames, "paused frames do not step")

	require.NoError(t, session.Splat(4, 4, 2, 0, 0))
	assert.True(t, d.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)))
	assert.Zero(t, session.Stats().Mass)

	assert.True(t, d.handleEvent(tcell.NewEventResize(32, 8)))
	assert.Equal(t, fluid.Viewport{Width: 32, Height: 8}, session.Viewport())
	cols, rows := d.surface.Size()
	assert.Equal(t, 32, cols)
	assert.Equal(t, 8, rows)
}

func TestDemoModeDrivesPointer(t *testing.T) {
	screen := newSimScreen(t, 40, 20)
	defer screen.Fini()
	session := newSession(t, 40, 20)
	defer session.Close()
	d := NewDriver(screen, session, NewSurface(screen, white, 1), Options{Demo: true, Seed: 3})

	assert.True(t, d.consumePointer(tcell.NewEventMouse(1, 1, tcell.ButtonNone, tcell.ModNone)),
		"mouse events are swallowed in demo mode")
	for i := 0; i < 10; i++ {
		require.NoError(t, d.frame())
	}
	assert.Greater(t, session.Stats().Mass, 0.0)
}

func TestRunQuitReleasesEverything(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	session := newSession(t, 20, 10)
	d := NewDriver(screen, session, NewSurface(screen, white, 1), Options{TPS: 120})

	ignore := goleak.IgnoreCurrent()
	defer goleak.VerifyNone(t, ignore)

	screen.InjectMouse(5, 5, tcell.ButtonNone, tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	errc := make(chan error, 1)
	go func() { errc <- d.Run(context.Background()) }()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not stop on quit")
	}
	assert.ErrorIs(t, session.Step(), fluid.ErrClosed)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	screen := newSimScreen(t, 20, 10)
	session := newSession(t, 20, 10)
	d := NewDriver(screen, session, NewSurface(screen, white, 1), Options{Demo: true})

	ignore := goleak.IgnoreCurrent()
	defer goleak.VerifyNone(t, ignore)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- d.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("driver did not stop on cancel")
	}
	assert.ErrorIs(t, session.Render(d.surface), fluid.ErrClosed)
}
