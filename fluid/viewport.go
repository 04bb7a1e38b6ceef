package fluid

import (
	"errors"
	"fmt"
)

// ErrInvalidViewport is returned for viewports without a positive area.
var ErrInvalidViewport = errors.New("invalid viewport")

// Viewport is the pixel size of the surface the session draws into.
type Viewport struct {
	Width, Height float32
}

func (v Viewport) validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", ErrInvalidViewport, v.Width, v.Height)
	}
	return nil
}

// CellSize returns the pixel size of one grid cell for resolution n.
func (v Viewport) CellSize(n int) (float32, float32) {
	return v.Width / float32(n), v.Height / float32(n)
}

// cellAt maps a viewport position to the grid cell containing it. Positions
// outside the viewport map past the edge and rely on clamped indexing.
func (v Viewport) cellAt(x, y float32, n int) (int, int) {
	gx := floorInt(x/v.Width*float32(n), n)
	gy := floorInt(y/v.Height*float32(n), n)
	return gx, gy
}

// floorInt floors f after bounding it to [-1, n] so the integer conversion
// stays defined for far off-screen positions.
func floorInt(f float32, n int) int {
	if f < -1 || f != f {
		return -1
	}
	if f > float32(n) {
		return n
	}
	i := int(f)
	if float32(i) > f {
		i--
	}
	return i
}
