package config

import (
	"fmt"
	"image/color"

	"github.com/crazy3lf/colorconv"
)

// TintConfig is the dye colour in HSV. Hue is in degrees, saturation and
// value in [0, 1].
type TintConfig struct {
	Hue        float64 `yaml:"hue"`
	Saturation float64 `yaml:"saturation"`
	Value      float64 `yaml:"value"`
}

func (t TintConfig) validate() error {
	if t.Hue < 0 || t.Hue >= 360 {
		return fmt.Errorf("tint hue %g outside [0, 360)", t.Hue)
	}
	if t.Saturation < 0 || t.Saturation > 1 || t.Value < 0 || t.Value > 1 {
		return fmt.Errorf("tint saturation %g and value %g must be in [0, 1]", t.Saturation, t.Value)
	}
	return nil
}

// RGBA returns the opaque dye colour.
func (t TintConfig) RGBA() (color.RGBA, error) {
	r, g, b, err := colorconv.HSVToRGB(t.Hue, t.Saturation, t.Value)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("tint %+v: %w", t, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
