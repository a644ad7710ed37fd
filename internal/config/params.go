package config

import (
	"flag"
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB gradient endpoint with channels in 0-1. Its text form is
// "#rrggbb", which is how it appears in flags, presets and the panel.
type Color struct {
	colorful.Color
}

// MustHex parses a "#rrggbb" literal and panics on malformed input.
// Only meant for compile-time constants such as the defaults.
func MustHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// ParseHex parses "#rrggbb" (or "#rgb") into a Color.
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{c}, nil
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Clamped().Hex()), nil
}

func (c *Color) UnmarshalText(b []byte) error {
	parsed, err := ParseHex(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Color) String() string { return c.Clamped().Hex() }

// Lerp interpolates component-wise in RGB space, without gamma correction.
func (c Color) Lerp(to Color, t float64) Color {
	return Color{c.BlendRgb(to.Color, t)}
}

// Params is the canonical parameter snapshot shared by the live preview and
// the script export. Pass it by value; a Params is never mutated in place by
// the consumers.
type Params struct {
	// Circle
	Radius    float64 `json:"radius"`
	Thickness float64 `json:"thickness"`

	// Fractal noise, approximated by whole-field wobble
	NoiseStrength float64 `json:"noiseStrength"`
	NoiseSpeed    float64 `json:"noiseSpeed"`

	// Gradient endpoints
	Color  Color `json:"color"`
	Color2 Color `json:"color2"`

	// Particles and camera
	Count      int     `json:"count"`
	Size       float64 `json:"size"`
	Speed      float64 `json:"speed"`
	CameraZoom float64 `json:"cameraZoom"`

	// Glow
	GlowIntensity float64 `json:"glowIntensity"`
	GlowRadius    float64 `json:"glowRadius"`
	GlowThreshold float64 `json:"glowThreshold"`
}

// Default returns the parameter set the preview starts with.
func Default() Params {
	return Params{
		Radius:        4.5,
		Thickness:     1.0,
		NoiseStrength: 0.5,
		NoiseSpeed:    1.0,
		Color:         MustHex("#a855f7"),
		Color2:        MustHex("#3b82f6"),
		Count:         5000,
		Size:          0.15,
		Speed:         1.5,
		CameraZoom:    14,
		GlowIntensity: 1.5,
		GlowRadius:    0.6,
		GlowThreshold: 0.2,
	}
}

// Sanitize returns a copy clamped to the valid domain of every field:
// negative or NaN values move to the nearest boundary (0, or the floor of a
// strictly positive field), floats are capped at MaxParam, a negative Count
// becomes 0 and color channels are clamped to 0-1. Values already in range
// pass through untouched.
func (p Params) Sanitize() Params {
	p.Radius = atLeast(p.Radius, MinRadius)
	p.Thickness = nonNegative(p.Thickness)
	p.NoiseStrength = nonNegative(p.NoiseStrength)
	p.NoiseSpeed = nonNegative(p.NoiseSpeed)
	p.Size = atLeast(p.Size, MinSize)
	p.Speed = nonNegative(p.Speed)
	p.CameraZoom = atLeast(p.CameraZoom, MinCameraZoom)
	p.GlowIntensity = nonNegative(p.GlowIntensity)
	p.GlowRadius = nonNegative(p.GlowRadius)
	p.GlowThreshold = nonNegative(p.GlowThreshold)

	if p.Count < 0 {
		p.Count = 0
	}

	p.Color = Color{clampColor(p.Color.Color)}
	p.Color2 = Color{clampColor(p.Color2.Color)}
	return p
}

// Geometry is the subset of Params whose change requires regenerating the
// particle field. It is comparable, so callers detect changes with ==.
type Geometry struct {
	Count     int
	Radius    float64
	Thickness float64
	Color     Color
	Color2    Color
}

func (p Params) Geometry() Geometry {
	return Geometry{
		Count:     p.Count,
		Radius:    p.Radius,
		Thickness: p.Thickness,
		Color:     p.Color,
		Color2:    p.Color2,
	}
}

// BindFlags registers one flag per parameter on fs, using the current values
// of p as defaults and writing parsed values back into p.
func BindFlags(fs *flag.FlagSet, p *Params) {
	fs.Float64Var(&p.Radius, "radius", p.Radius, "ring radius")
	fs.Float64Var(&p.Thickness, "thickness", p.Thickness, "ring thickness (radial spread)")
	fs.Float64Var(&p.NoiseStrength, "noise-strength", p.NoiseStrength, "fractal noise influence")
	fs.Float64Var(&p.NoiseSpeed, "noise-speed", p.NoiseSpeed, "fractal noise evolution speed")
	fs.TextVar(&p.Color, "color", p.Color, "primary gradient color (#rrggbb)")
	fs.TextVar(&p.Color2, "color2", p.Color2, "secondary gradient color (#rrggbb)")
	fs.IntVar(&p.Count, "count", p.Count, "particle count")
	fs.Float64Var(&p.Size, "size", p.Size, "particle size")
	fs.Float64Var(&p.Speed, "speed", p.Speed, "vortex velocity")
	fs.Float64Var(&p.CameraZoom, "zoom", p.CameraZoom, "camera distance")
	fs.Float64Var(&p.GlowIntensity, "glow-intensity", p.GlowIntensity, "glow intensity (exposure)")
	fs.Float64Var(&p.GlowRadius, "glow-radius", p.GlowRadius, "glow radius")
	fs.Float64Var(&p.GlowThreshold, "glow-threshold", p.GlowThreshold, "glow luminance threshold")
}

func nonNegative(v float64) float64 {
	return atLeast(v, 0)
}

// atLeast clamps v into [floor, MaxParam]; NaN maps to floor.
func atLeast(v, floor float64) float64 {
	if math.IsNaN(v) || v < floor {
		return floor
	}
	if v > MaxParam {
		return MaxParam
	}
	return v
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampColor(c colorful.Color) colorful.Color {
	return colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)}
}

// Overlay replaces *p with base, then re-applies every flag that was set
// explicitly on fs. Command-line values win over a loaded preset.
func Overlay(fs *flag.FlagSet, p *Params, base Params) error {
	set := map[string]string{}
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = f.Value.String()
	})

	*p = base
	for name, v := range set {
		if err := fs.Set(name, v); err != nil {
			return fmt.Errorf("reapply -%s: %w", name, err)
		}
	}
	return nil
}
