package fluid

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is wrapped by every Params validation failure.
var ErrInvalidParams = errors.New("invalid simulation parameters")

// Params configures the solver, the pointer forcing and the renderer.
type Params struct {
	Resolution int
	Dt         float32
	Iterations int

	Viscosity float32
	Diffusion float32

	DensityDissipation  float32
	VelocityDissipation float32

	DyeAmount  float32
	ForceScale float32

	Threshold float32
	MaxAlpha  float32
	Overlap   float32
}

// Default solver and rendering values.
const (
	DefaultResolution          = 128
	DefaultDt                  = 0.1
	DefaultIterations          = 20
	DefaultDensityDissipation  = 0.97
	DefaultVelocityDissipation = 0.98
	DefaultDyeAmount           = 2.0
	DefaultForceScale          = 0.5
	DefaultThreshold           = 0.01
	DefaultMaxAlpha            = 0.8
	DefaultOverlap             = 1
)

// DefaultParams returns the tuning used by the background animation.
func DefaultParams() Params {
	return Params{
		Resolution:          DefaultResolution,
		Dt:                  DefaultDt,
		Iterations:          DefaultIterations,
		DensityDissipation:  DefaultDensityDissipation,
		VelocityDissipation: DefaultVelocityDissipation,
		DyeAmount:           DefaultDyeAmount,
		ForceScale:          DefaultForceScale,
		Threshold:           DefaultThreshold,
		MaxAlpha:            DefaultMaxAlpha,
		Overlap:             DefaultOverlap,
	}
}

// Validate reports the first out-of-range parameter.
func (p Params) Validate() error {
	switch {
	case p.Resolution < 3:
		return fmt.Errorf("%w: resolution %d needs at least one interior cell", ErrInvalidParams, p.Resolution)
	case p.Dt <= 0:
		return fmt.Errorf("%w: dt %g must be positive", ErrInvalidParams, p.Dt)
	case p.Iterations < 1:
		return fmt.Errorf("%w: iterations %d must be at least 1", ErrInvalidParams, p.Iterations)
	case p.Viscosity < 0 || p.Diffusion < 0:
		return fmt.Errorf("%w: viscosity %g and diffusion %g must not be negative", ErrInvalidParams, p.Viscosity, p.Diffusion)
	case p.DensityDissipation <= 0 || p.DensityDissipation > 1:
		return fmt.Errorf("%w: density dissipation %g outside (0, 1]", ErrInvalidParams, p.DensityDissipation)
	case p.VelocityDissipation <= 0 || p.VelocityDissipation > 1:
		return fmt.Errorf("%w: velocity dissipation %g outside (0, 1]", ErrInvalidParams, p.VelocityDissipation)
	case p.Threshold < 0:
		return fmt.Errorf("%w: threshold %g must not be negative", ErrInvalidParams, p.Threshold)
	case p.MaxAlpha <= 0 || p.MaxAlpha > 1:
		return fmt.Errorf("%w: max alpha %g outside (0, 1]", ErrInvalidParams, p.MaxAlpha)
	case p.Overlap < 0:
		return fmt.Errorf("%w: overlap %g must not be negative", ErrInvalidParams, p.Overlap)
	}
	return nil
}
