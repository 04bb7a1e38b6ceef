// Package autopilot produces a scripted pointer path for demos, snapshots
// and profile capture.
package autopilot

import (
	"math"
	"math/rand"
)

// Default stride of the walk in viewport pixels per frame.
const DefaultSpeed = 6

// Walker is a pseudo-random pointer that wanders inside a viewport and
// turns away from the edges.
type Walker struct {
	rng    *rand.Rand
	speed  float64
	margin float64

	x, y       float64
	dirX, dirY float64
	frames     int
}

// NewWalker starts a walk in the middle of a width x height viewport.
func NewWalker(seed int64, width, height float64) *Walker {
	w := &Walker{
		rng:    rand.New(rand.NewSource(seed)),
		speed:  DefaultSpeed,
		margin: 2,
		x:      width / 2,
		y:      height / 2,
	}
	return w
}

// SetSpeed changes the stride in pixels per frame.
func (w *Walker) SetSpeed(speed float64) {
	if speed > 0 {
		w.speed = speed
	}
}

// Position returns the current pointer position.
func (w *Walker) Position() (float64, float64) { return w.x, w.y }

// Next advances the walk by one frame within the given viewport and returns
// the new position.
func (w *Walker) Next(width, height float64) (float64, float64) {
	for attempts := 0; attempts < 5; attempts++ {
		if w.frames <= 0 {
			w.randomizeDirection()
		}
		nextX := w.x + w.dirX*w.speed
		nextY := w.y + w.dirY*w.speed
		if nextX > w.margin && nextX < width-w.margin &&
			nextY > w.margin && nextY < height-w.margin {
			w.frames--
			w.x, w.y = nextX, nextY
			return w.x, w.y
		}
		w.frames = 0
	}
	// Boxed in, usually after a shrink: snap back inside.
	w.x = math.Max(w.margin, math.Min(width-w.margin, w.x))
	w.y = math.Max(w.margin, math.Min(height-w.margin, w.y))
	return w.x, w.y
}

// randomizeDirection chooses a new heading and how long to keep it.
func (w *Walker) randomizeDirection() {
	angle := w.rng.Float64() * 2 * math.Pi
	w.dirX = math.Cos(angle)
	w.dirY = math.Sin(angle)
	w.frames = 20 + w.rng.Intn(50)
}
