package main

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"fluidbg/autopilot"
	"fluidbg/fluid"
)

// Game drives one fluid session from the ebiten loop: Update steps, Draw
// renders.
type Game struct {
	session *fluid.Session
	surface *screenSurface
	logger  *zap.Logger

	width, height int
	layoutW       int
	layoutH       int
	cursorX       int
	cursorY       int
	cursorSeen    bool
	paused        bool
	showDebug     bool
	lastStepTime  time.Duration
	lastStatsLog  time.Time

	walker         *autopilot.Walker
	autopilotUntil time.Time
	stopProfile    func()
}

// newGame constructs a Game for a window of width x height.
func newGame(session *fluid.Session, tint color.RGBA, opacity float32, width, height int, l *zap.Logger) *Game {
	return &Game{
		session:   session,
		surface:   newScreenSurface(tint, opacity),
		logger:    l,
		width:     width,
		height:    height,
		layoutW:   width,
		layoutH:   height,
		showDebug: debugFlag,
	}
}

// Update feeds the pointer into the session and advances it one step.
func (g *Game) Update() error {
	if g.autopilotExpired() {
		g.logger.Info("autopilot finished", zap.Uint64("frames", g.session.Stats().Frames))
		return ebiten.Termination
	}

	g.handleControls()
	g.syncViewport()
	g.trackPointer()

	if g.paused {
		return nil
	}
	start := time.Now()
	if err := g.session.Step(); err != nil {
		return fmt.Errorf("fluid step: %w", err)
	}
	g.lastStepTime = time.Since(start)
	g.logStats()
	return nil
}

// syncViewport forwards a window resize to the session mapping.
func (g *Game) syncViewport() {
	if g.layoutW == g.width && g.layoutH == g.height {
		return
	}
	g.width, g.height = g.layoutW, g.layoutH
	g.session.Resize(float32(g.width), float32(g.height))
}

// logStats writes a debug summary at most once per statsLogInterval.
func (g *Game) logStats() {
	now := time.Now()
	if now.Sub(g.lastStatsLog) < statsLogInterval {
		return
	}
	st := g.session.Stats()
	g.logger.Debug("fluid stats",
		zap.Uint64("frames", st.Frames),
		zap.Float64("mass", st.Mass),
		zap.Float64("speed", st.Speed),
		zap.Float64("divergence", st.MeanDivergence),
		zap.Int("rects", st.Rects),
		zap.Duration("step", g.lastStepTime))
	g.lastStatsLog = now
}

// shutdown releases the session and stops a running profile.
func (g *Game) shutdown() {
	if g.stopProfile != nil {
		g.stopProfile()
	}
	if err := g.session.Close(); err != nil {
		g.logger.Warn("closing session", zap.Error(err))
	}
}

// runWindow opens the ebiten window and blocks until it is closed.
func runWindow() error {
	d := appConfig.Display
	session, err := fluid.NewSession(appConfig.Params(),
		fluid.Viewport{Width: float32(d.Width), Height: float32(d.Height)},
		fluid.WithLogger(logger))
	if err != nil {
		return err
	}
	tint, err := appConfig.Render.Tint.RGBA()
	if err != nil {
		session.Close()
		return err
	}

	g := newGame(session, tint, d.Opacity, d.Width, d.Height, logger)
	defer g.shutdown()

	switch {
	case recordPGOFlag:
		stop, err := startDefaultPGORecording(pgoOutputPath)
		if err != nil {
			return err
		}
		logger.Info("recording profile", zap.String("path", pgoOutputPath), zap.Duration("duration", pgoRecordDuration))
		g.enableAutopilot(pgoRecordDuration)
		g.stopProfile = stop
	case demoFlag:
		g.enableAutopilot(0)
	}

	tps := d.TPS
	if tps <= 0 {
		tps = defaultTPS
	}
	ebiten.SetTPS(tps)
	ebiten.SetWindowSize(d.Width, d.Height)
	ebiten.SetWindowTitle(d.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
