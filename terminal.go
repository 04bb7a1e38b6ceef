package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"fluidbg/fluid"
	"fluidbg/terminal"
)

// runTerminal takes over the controlling terminal until the user quits or
// ctx is cancelled.
func runTerminal(ctx context.Context) error {
	tint, err := appConfig.Render.Tint.RGBA()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	cols, rows := screen.Size()
	session, err := fluid.NewSession(appConfig.Params(),
		fluid.Viewport{Width: float32(max(cols, 1)), Height: float32(max(rows, 1))},
		fluid.WithLogger(logger))
	if err != nil {
		screen.Fini()
		return err
	}

	// Terminal cells use the full intensity range; display.opacity is for
	// the window and snapshots.
	surface := terminal.NewSurface(screen, tint, 1)
	driver := terminal.NewDriver(screen, session, surface, terminal.Options{
		TPS:    appConfig.Display.TPS,
		Demo:   demoFlag || recordPGOFlag,
		Seed:   time.Now().UnixNano(),
		Logger: logger,
	})

	if recordPGOFlag {
		stop, err := startDefaultPGORecording(pgoOutputPath)
		if err != nil {
			screen.Fini()
			session.Close()
			return err
		}
		defer stop()
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, pgoRecordDuration)
		defer cancel()
	}
	return driver.Run(ctx)
}
