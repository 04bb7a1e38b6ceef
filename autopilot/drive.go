package autopilot

import (
	"fmt"

	"fluidbg/fluid"
)

// Drive moves the pointer along the walk for frames ticks of s, rendering
// every tick into dst.
func Drive(s *fluid.Session, w *Walker, dst fluid.Surface, frames int) error {
	for i := 0; i < frames; i++ {
		vp := s.Viewport()
		x, y := w.Next(float64(vp.Width), float64(vp.Height))
		s.PointerMoved(float32(x), float32(y))
		if err := s.Tick(dst); err != nil {
			return fmt.Errorf("autopilot frame %d: %w", i, err)
		}
	}
	return nil
}
