package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fluidbg/config"
)

var rootCmd = &cobra.Command{
	Use:   "fluidbg",
	Short: "Decorative stable-fluids background that follows the pointer",
	Long: `fluidbg runs a small incompressible fluid simulation on a square grid.
Moving the pointer injects dye and momentum; the dye swirls and fades.

Run without arguments to open the configured display backend.`,
	SilenceUsage: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if appConfig.Display.Backend == config.BackendTerminal {
			return runTerminal(cmd.Context())
		}
		return runWindow()
	},
}

var terminalCmd = &cobra.Command{
	Use:   "terminal",
	Short: "Run the fluid in the terminal, one character cell per pixel",
	Long: `Runs the simulation on a tcell screen with mouse tracking.
Keys: q/Esc quit, r reset, p pause. Logs go to ` + terminalLogPath + `.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTerminal(cmd.Context())
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := appConfig.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.PersistentPreRunE = setup
	registerFlags(rootCmd)
	registerSnapshotFlags(snapshotCmd)
	rootCmd.AddCommand(terminalCmd, snapshotCmd, configCmd)
}

// setup loads the configuration and builds the logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	appConfig = cfg

	var outputs []string
	if cmd == terminalCmd || (cmd == rootCmd && cfg.Display.Backend == config.BackendTerminal) {
		// stderr shares the tty with the screen.
		outputs = []string{terminalLogPath}
	}
	logger, err = newLogger(cfg.Logging, verboseFlag, outputs...)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded",
		zap.String("path", configPath),
		zap.String("backend", cfg.Display.Backend),
		zap.Int("resolution", cfg.Simulation.Resolution))
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
