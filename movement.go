package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"fluidbg/autopilot"
)

// enableAutopilot hands the pointer to a random walk. A zero duration
// walks until the window closes.
func (g *Game) enableAutopilot(duration time.Duration) {
	g.walker = autopilot.NewWalker(time.Now().UnixNano(), float64(g.width), float64(g.height))
	if duration > 0 {
		g.autopilotUntil = time.Now().Add(duration)
	}
}

// autopilotExpired reports whether a timed autopilot run is over.
func (g *Game) autopilotExpired() bool {
	return g.walker != nil && !g.autopilotUntil.IsZero() && time.Now().After(g.autopilotUntil)
}

// trackPointer publishes the autopilot or cursor position. The cursor is
// only published when it moved.
func (g *Game) trackPointer() {
	if g.walker != nil {
		x, y := g.walker.Next(float64(g.width), float64(g.height))
		g.session.PointerMoved(float32(x), float32(y))
		return
	}
	x, y := ebiten.CursorPosition()
	if g.cursorSeen && x == g.cursorX && y == g.cursorY {
		return
	}
	g.cursorX, g.cursorY, g.cursorSeen = x, y, true
	g.session.PointerMoved(float32(x), float32(y))
}

// handleControls processes the window hotkeys.
func (g *Game) handleControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.session.Reset(); err != nil {
			g.logger.Warn("reset failed", zap.Error(err))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		g.logger.Debug("pause toggled", zap.Bool("paused", g.paused))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showDebug = !g.showDebug
	}
}
