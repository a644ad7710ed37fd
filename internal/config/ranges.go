package config

import "math"

// Field identifies one numeric parameter of Params.
type Field int

const (
	FieldRadius Field = iota
	FieldThickness
	FieldNoiseStrength
	FieldNoiseSpeed
	FieldCount
	FieldSize
	FieldSpeed
	FieldCameraZoom
	FieldGlowRadius
	FieldGlowIntensity
	FieldGlowThreshold
)

var fieldNames = [...]string{
	FieldRadius:        "radius",
	FieldThickness:     "thickness",
	FieldNoiseStrength: "noiseStrength",
	FieldNoiseSpeed:    "noiseSpeed",
	FieldCount:         "count",
	FieldSize:          "size",
	FieldSpeed:         "speed",
	FieldCameraZoom:    "cameraZoom",
	FieldGlowRadius:    "glowRadius",
	FieldGlowIntensity: "glowIntensity",
	FieldGlowThreshold: "glowThreshold",
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Range is the slider range the control surface offers for a field.
type Range struct {
	Min, Max, Step float64
}

// Ranges holds the control surface ranges. They are narrower than the domain
// Sanitize enforces; the core accepts anything Sanitize lets through.
var Ranges = map[Field]Range{
	FieldRadius:        {1, 10, 0.1},
	FieldThickness:     {0.1, 5, 0.1},
	FieldNoiseStrength: {0, 2, 0.1},
	FieldNoiseSpeed:    {0, 5, 0.1},
	FieldCount:         {1000, 20000, 500},
	FieldSize:          {0.01, 0.5, 0.01},
	FieldSpeed:         {0, 5, 0.1},
	FieldCameraZoom:    {5, 30, 1},
	FieldGlowRadius:    {0, 2, 0.1},
	FieldGlowIntensity: {0, 3, 0.1},
	FieldGlowThreshold: {0, 1, 0.05},
}

// Value returns the numeric value of f.
func (p Params) Value(f Field) float64 {
	switch f {
	case FieldRadius:
		return p.Radius
	case FieldThickness:
		return p.Thickness
	case FieldNoiseStrength:
		return p.NoiseStrength
	case FieldNoiseSpeed:
		return p.NoiseSpeed
	case FieldCount:
		return float64(p.Count)
	case FieldSize:
		return p.Size
	case FieldSpeed:
		return p.Speed
	case FieldCameraZoom:
		return p.CameraZoom
	case FieldGlowRadius:
		return p.GlowRadius
	case FieldGlowIntensity:
		return p.GlowIntensity
	case FieldGlowThreshold:
		return p.GlowThreshold
	}
	return 0
}

// Set assigns v to f. Count is rounded to the nearest integer.
func (p *Params) Set(f Field, v float64) {
	switch f {
	case FieldRadius:
		p.Radius = v
	case FieldThickness:
		p.Thickness = v
	case FieldNoiseStrength:
		p.NoiseStrength = v
	case FieldNoiseSpeed:
		p.NoiseSpeed = v
	case FieldCount:
		p.Count = int(math.Round(v))
	case FieldSize:
		p.Size = v
	case FieldSpeed:
		p.Speed = v
	case FieldCameraZoom:
		p.CameraZoom = v
	case FieldGlowRadius:
		p.GlowRadius = v
	case FieldGlowIntensity:
		p.GlowIntensity = v
	case FieldGlowThreshold:
		p.GlowThreshold = v
	}
}

// Nudge moves f by steps slider steps, staying inside its Range. The result
// is snapped to the step grid so repeated nudges do not accumulate float drift.
func (p *Params) Nudge(f Field, steps int) {
	r, ok := Ranges[f]
	if !ok {
		return
	}
	v := p.Value(f) + float64(steps)*r.Step
	v = math.Round(v/r.Step) * r.Step
	v = math.Round(v*1e6) / 1e6
	if v < r.Min {
		v = r.Min
	}
	if v > r.Max {
		v = r.Max
	}
	p.Set(f, v)
}
