package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"

	"fluidbg/fluid"
)

// screenBlend composites premultiplied sources as out = src + dst*(1-src).
var screenBlend = ebiten.Blend{
	BlendFactorSourceRGB:        ebiten.BlendFactorOne,
	BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
	BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
	BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
	BlendOperationRGB:           ebiten.BlendOperationAdd,
	BlendOperationAlpha:         ebiten.BlendOperationAdd,
}

// screenSurface draws fluid rects onto the ebiten screen by stretching a
// single white pixel.
type screenSurface struct {
	dst     *ebiten.Image
	pixel   *ebiten.Image
	tint    color.RGBA
	opacity float32
}

func newScreenSurface(tint color.RGBA, opacity float32) *screenSurface {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &screenSurface{pixel: pixel, tint: tint, opacity: opacity}
}

func (s *screenSurface) Clear() {
	s.dst.Fill(color.Black)
}

func (s *screenSurface) FillRect(r fluid.Rect, alpha float32) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.W), float64(r.H))
	op.GeoM.Translate(float64(r.X), float64(r.Y))
	op.ColorScale.ScaleWithColor(s.tint)
	op.ColorScale.ScaleAlpha(alpha * s.opacity)
	op.Blend = screenBlend
	s.dst.DrawImage(s.pixel, op)
}

// Draw renders the density field and the optional debug overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.dst = screen
	if err := g.session.Render(g.surface); err != nil {
		g.logger.Warn("render failed", zap.Error(err))
		return
	}

	if g.showDebug {
		st := g.session.Stats()
		state := "running"
		if g.paused {
			state = "paused"
		}
		debugMsg := fmt.Sprintf("FPS: %.1f  TPS: %.1f (%s)\nStep: %.2f ms  Frames: %d\nMass: %.2f  Speed: %.2f  Div: %.5f\nRects: %d\nR reset, P pause, F3 overlay",
			ebiten.ActualFPS(), ebiten.ActualTPS(), state,
			g.lastStepTime.Seconds()*1000, st.Frames,
			st.Mass, st.Speed, st.MeanDivergence, st.Rects)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout follows the window size so one logical pixel is one screen pixel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 {
		g.layoutW, g.layoutH = outsideWidth, outsideHeight
	}
	return g.layoutW, g.layoutH
}
