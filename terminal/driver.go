package terminal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fluidbg/autopilot"
	"fluidbg/fluid"
)

// Options configures a Driver.
type Options struct {
	TPS    int
	Demo   bool
	Seed   int64
	Logger *zap.Logger
}

// Driver owns the frame loop of a terminal session.
type Driver struct {
	screen  tcell.Screen
	session *fluid.Session
	surface *Surface
	logger  *zap.Logger
	period  time.Duration
	walker  *autopilot.Walker
	paused  bool
}

// NewDriver wires a session to an initialized screen. The driver takes
// ownership of both and releases them when Run returns.
func NewDriver(screen tcell.Screen, session *fluid.Session, surface *Surface, opts Options) *Driver {
	tps := opts.TPS
	if tps <= 0 {
		tps = 60
	}
	d := &Driver{
		screen:  screen,
		session: session,
		surface: surface,
		logger:  opts.Logger,
		period:  time.Second / time.Duration(tps),
	}
	if d.logger == nil {
		d.logger = zap.NewNop()
	}
	if opts.Demo {
		cols, rows := surface.Size()
		d.walker = autopilot.NewWalker(opts.Seed, float64(cols), float64(rows))
		d.walker.SetSpeed(1)
	}
	return d
}

// Run steps and draws the session until ctx is done or the user quits.
// The screen and the session are released together before Run returns.
func (d *Driver) Run(ctx context.Context) error {
	d.screen.EnableMouse()
	d.screen.HideCursor()
	cols, rows := d.screen.Size()
	d.resize(cols, rows)

	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			ev := d.screen.PollEvent()
			if ev == nil {
				return nil
			}
			if d.consumePointer(ev) {
				continue
			}
			select {
			case events <- ev:
			case <-done:
				return nil
			}
		}
	})

	g.Go(func() error {
		defer func() {
			close(done)
			d.screen.Fini()
		}()
		return d.loop(gctx, events)
	})

	err := g.Wait()
	if cerr := d.session.Close(); err == nil {
		err = cerr
	}
	return err
}

// consumePointer publishes mouse motion straight into the session mailbox
// from the polling goroutine. It reports whether ev was handled.
func (d *Driver) consumePointer(ev tcell.Event) bool {
	mouse, ok := ev.(*tcell.EventMouse)
	if !ok {
		return false
	}
	if d.walker == nil {
		x, y := mouse.Position()
		// Aim at the middle of the character cell.
		d.session.PointerMoved(float32(x)+0.5, float32(y)+0.5)
	}
	return true
}

func (d *Driver) loop(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(d.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !d.handleEvent(ev) {
				d.logger.Info("terminal driver quit")
				return nil
			}
		case <-ticker.C:
			if err := d.frame(); err != nil {
				return fmt.Errorf("terminal frame: %w", err)
			}
		}
	}
}

// frame runs one simulation tick and flushes it to the screen.
func (d *Driver) frame() error {
	if d.walker != nil {
		cols, rows := d.surface.Size()
		x, y := d.walker.Next(float64(cols), float64(rows))
		d.session.PointerMoved(float32(x), float32(y))
	}
	if d.paused {
		if err := d.session.Render(d.surface); err != nil {
			return err
		}
	} else if err := d.session.Tick(d.surface); err != nil {
		return err
	}
	d.surface.Flush()
	return nil
}

// handleEvent reacts to keys and resizes. It returns false on quit.
func (d *Driver) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'r':
				if err := d.session.Reset(); err != nil {
					d.logger.Warn("reset failed", zap.Error(err))
				}
			case 'p':
				d.paused = !d.paused
			}
		}
	case *tcell.EventResize:
		d.screen.Sync()
		d.resize(ev.Size())
	}
	return true
}

func (d *Driver) resize(cols, rows int) {
	d.surface.Resize(cols, rows)
	if cols > 0 && rows > 0 {
		d.session.Resize(float32(cols), float32(rows))
	}
}
