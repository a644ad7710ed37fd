package aescript

import (
	"fmt"
	"math"
	"strconv"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// Kind is the effect control type a parameter is exposed as.
type Kind int

const (
	KindSlider Kind = iota
	KindColor
	KindFixed // slider with a constant value, not backed by a parameter
)

// Scale converts an internal value to host units: v * Mul / Div.
type Scale struct {
	Mul, Div float64
}

var unscaled = Scale{1, 1}

func (s Scale) Apply(v float64) float64 {
	return v * s.Mul / s.Div
}

// Control is one named control on the host's control layer.
type Control struct {
	Group int
	Label string
	Kind  Kind

	Field config.Field // KindSlider
	Scale Scale        // KindSlider
	Color int          // KindColor: 0 = Color, 1 = Color2
	Fixed float64      // KindFixed
}

// Name is the stable "<group>-<label>" identifier expressions refer to.
func (c Control) Name() string {
	return fmt.Sprintf("%d-%s", c.Group, c.Label)
}

// Value returns the control's value in host units for p.
func (c Control) Value(p config.Params) float64 {
	switch c.Kind {
	case KindSlider:
		return c.Scale.Apply(p.Value(c.Field))
	case KindFixed:
		return c.Fixed
	}
	return 0
}

// Endpoint returns the gradient color a KindColor control carries.
func (c Control) Endpoint(p config.Params) config.Color {
	if c.Color == 1 {
		return p.Color2
	}
	return p.Color
}

// Units is the internal to host unit table. The preview and the exported
// script both read parameters through it, so a factor lives in exactly one place.
var Units = []Control{
	{Group: 1, Label: "Radius (半径)", Field: config.FieldRadius, Scale: Scale{20, 1}},
	{Group: 1, Label: "Thickness (圆环厚度)", Field: config.FieldThickness, Scale: Scale{10, 1}},

	{Group: 2, Label: "Noise Scale (杂色缩放)", Field: config.FieldNoiseStrength, Scale: Scale{10, 1}},
	{Group: 2, Label: "Noise Evolution (演化速度)", Field: config.FieldNoiseSpeed, Scale: unscaled},

	{Group: 3, Label: "Color A (主色)", Kind: KindColor, Color: 0},
	{Group: 3, Label: "Color B (辅色)", Kind: KindColor, Color: 1},

	{Group: 4, Label: "Birth Rate (粒子数量)", Field: config.FieldCount, Scale: Scale{1, 1000}},
	{Group: 4, Label: "Velocity (速度)", Field: config.FieldSpeed, Scale: unscaled},
	{Group: 4, Label: "Gravity (重力)", Kind: KindFixed, Fixed: 0},
	{Group: 4, Label: "Size (粒子大小)", Field: config.FieldSize, Scale: unscaled},
	{Group: 4, Label: "Camera Distance (摄像机距离)", Field: config.FieldCameraZoom, Scale: Scale{100, 1}},

	{Group: 5, Label: "Glow Radius (发光半径)", Field: config.FieldGlowRadius, Scale: Scale{50, 1}},
	{Group: 5, Label: "Glow Intensity (发光强度)", Field: config.FieldGlowIntensity, Scale: unscaled},
	{Group: 5, Label: "Threshold (阈值)", Field: config.FieldGlowThreshold, Scale: Scale{100, 1}},
}

// Lookup returns the slider control backed by f.
func Lookup(f config.Field) (Control, bool) {
	for _, c := range Units {
		if c.Kind == KindSlider && c.Field == f {
			return c, true
		}
	}
	return Control{}, false
}

func mustLookup(f config.Field) Control {
	c, ok := Lookup(f)
	if !ok {
		panic("aescript: no control for " + f.String())
	}
	return c
}

func controlByLabel(label string) Control {
	for _, c := range Units {
		if c.Label == label {
			return c
		}
	}
	panic("aescript: no control labelled " + label)
}

// FormatNumber renders v as a script literal: rounded to 1e-9 and printed
// in the shortest form, so 4.5*20 is "90" and 0.15 stays "0.15".
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	if math.Abs(v) < 1e9 {
		v = math.Round(v*1e9) / 1e9
	}
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatColor(c config.Color) string {
	c = config.Color{Color: c.Clamped()}
	return fmt.Sprintf("[%s,%s,%s,1]", FormatNumber(c.R), FormatNumber(c.G), FormatNumber(c.B))
}
