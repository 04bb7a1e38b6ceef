package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fluidbg/config"
)

// Persistent flags shared by every command.
var (
	// configPath points at the YAML configuration.
	configPath string

	// verboseFlag forces debug level logging.
	verboseFlag bool

	// debugFlag enables the FPS and fluid stats overlay.
	debugFlag bool

	// demoFlag lets the autopilot move the pointer.
	demoFlag bool

	// recordPGOFlag runs the autopilot for a fixed time while capturing default.pgo.
	recordPGOFlag bool
)

// State built by the root command before any subcommand runs.
var (
	appConfig *config.Config
	logger    *zap.Logger
)

func registerFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultPath, "path to the YAML configuration")
	pf.BoolVarP(&verboseFlag, "verbose", "v", false, "log at debug level")
	pf.BoolVar(&debugFlag, "debug", false, "show FPS and fluid stats overlay")
	pf.BoolVar(&demoFlag, "demo", false, "move the pointer automatically")
	pf.BoolVar(&recordPGOFlag, "record-pgo", false, "run the demo for 15s while capturing "+pgoOutputPath)
}
