// Package config loads the YAML configuration for the fluid background.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"fluidbg/fluid"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "fluidbg.yaml"

// Backends understood by the CLI.
const (
	BackendWindow   = "window"
	BackendTerminal = "terminal"
)

// Config is the full application configuration.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Render     RenderConfig     `yaml:"render"`
	Display    DisplayConfig    `yaml:"display"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SimulationConfig holds the solver tuning.
type SimulationConfig struct {
	Resolution          int     `yaml:"resolution"`
	Dt                  float32 `yaml:"dt"`
	Iterations          int     `yaml:"iterations"`
	Viscosity           float32 `yaml:"viscosity"`
	Diffusion           float32 `yaml:"diffusion"`
	DensityDissipation  float32 `yaml:"density_dissipation"`
	VelocityDissipation float32 `yaml:"velocity_dissipation"`
	DyeAmount           float32 `yaml:"dye_amount"`
	ForceScale          float32 `yaml:"force_scale"`
}

// RenderConfig controls how density becomes pixels.
type RenderConfig struct {
	Threshold float32    `yaml:"threshold"`
	MaxAlpha  float32    `yaml:"max_alpha"`
	Overlap   float32    `yaml:"overlap"`
	Tint      TintConfig `yaml:"tint"`
}

// DisplayConfig describes the front end.
type DisplayConfig struct {
	Backend string  `yaml:"backend"`
	Title   string  `yaml:"title"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	TPS     int     `yaml:"tps"`
	Opacity float32 `yaml:"opacity"`
}

// LoggingConfig selects the zap logger flavour.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	p := fluid.DefaultParams()
	return &Config{
		Simulation: SimulationConfig{
			Resolution:          p.Resolution,
			Dt:                  p.Dt,
			Iterations:          p.Iterations,
			Viscosity:           p.Viscosity,
			Diffusion:           p.Diffusion,
			DensityDissipation:  p.DensityDissipation,
			VelocityDissipation: p.VelocityDissipation,
			DyeAmount:           p.DyeAmount,
			ForceScale:          p.ForceScale,
		},
		Render: RenderConfig{
			Threshold: p.Threshold,
			MaxAlpha:  p.MaxAlpha,
			Overlap:   p.Overlap,
			Tint:      TintConfig{Hue: 0, Saturation: 0, Value: 1},
		},
		Display: DisplayConfig{
			Backend: BackendWindow,
			Title:   "Fluid Background",
			Width:   1024,
			Height:  768,
			TPS:     60,
			Opacity: 0.4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// applyEnvOverrides lets FLUIDBG_* variables override file values.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("FLUIDBG_RESOLUTION"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FLUIDBG_RESOLUTION: %w", err)
		}
		c.Simulation.Resolution = n
	}
	if v := os.Getenv("FLUIDBG_ITERATIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FLUIDBG_ITERATIONS: %w", err)
		}
		c.Simulation.Iterations = n
	}
	if v := os.Getenv("FLUIDBG_BACKEND"); v != "" {
		c.Display.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("FLUIDBG_LOG_LEVEL"); v != "" {
		c.Logging.Level = strings.ToLower(v)
	}
	return nil
}

// Params converts the simulation and render sections for the solver.
func (c *Config) Params() fluid.Params {
	s := c.Simulation
	return fluid.Params{
		Resolution:          s.Resolution,
		Dt:                  s.Dt,
		Iterations:          s.Iterations,
		Viscosity:           s.Viscosity,
		Diffusion:           s.Diffusion,
		DensityDissipation:  s.DensityDissipation,
		VelocityDissipation: s.VelocityDissipation,
		DyeAmount:           s.DyeAmount,
		ForceScale:          s.ForceScale,
		Threshold:           c.Render.Threshold,
		MaxAlpha:            c.Render.MaxAlpha,
		Overlap:             c.Render.Overlap,
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if err := c.Render.Tint.validate(); err != nil {
		return err
	}
	d := c.Display
	switch d.Backend {
	case BackendWindow, BackendTerminal:
	default:
		return fmt.Errorf("unknown display backend %q", d.Backend)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("display size %dx%d must be positive", d.Width, d.Height)
	}
	if d.TPS <= 0 {
		return fmt.Errorf("display tps %d must be positive", d.TPS)
	}
	if d.Opacity <= 0 || d.Opacity > 1 {
		return fmt.Errorf("display opacity %g outside (0, 1]", d.Opacity)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Logging.Level)
	}
	return nil
}
