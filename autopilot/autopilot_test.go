package autopilot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkerStaysInside(t *testing.T) {
	w := NewWalker(42, 320, 240)
	moved := 0
	px, py := w.Position()
	for i := 0; i < 5000; i++ {
		x, y := w.Next(320, 240)
		require.GreaterOrEqual(t, x, 2.0)
		require.LessOrEqual(t, x, 318.0)
		require.GreaterOrEqual(t, y, 2.0)
		require.LessOrEqual(t, y, 238.0)
		if x != px || y != py {
			moved++
		}
		px, py = x, y
	}
	assert.Greater(t, moved, 4000)
}

func TestWalkerDeterministic(t *testing.T) {
	a := NewWalker(7, 100, 100)
	b := NewWalker(7, 100, 100)
	for i := 0; i < 200; i++ {
		ax, ay := a.Next(100, 100)
		bx, by := b.Next(100, 100)
		require.Equal(t, ax, bx)
		require.Equal(t, ay, by)
	}
}

func TestWalkerRecoversFromShrink(t *testing.T) {
	w := NewWalker(1, 1000, 1000)
	x, y := w.Next(50, 50)
	assert.LessOrEqual(t, x, 48.0)
	assert.LessOrEqual(t, y, 48.0)
}

func TestWalkerSpeed(t *testing.T) {
	w := NewWalker(3, 1000, 1000)
	w.SetSpeed(-1)
	w.SetSpeed(10)
	x0, y0 := w.Position()
	x1, y1 := w.Next(1000, 1000)
	assert.InDelta(t, 100.0, (x1-x0)*(x1-x0)+(y1-y0)*(y1-y0), 1e-6)
}
