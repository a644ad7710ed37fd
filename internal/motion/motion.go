// Package motion computes the per-frame transform of the whole particle field.
//
// Noise is approximated by rigid-body wobble: small X/Z rotations and a
// breathing scale applied to the entire field. Nothing here touches
// per-particle data, so the cost per frame is constant in the particle count.
package motion

import (
	"math"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// Per-frame vortex rotation at speed 1 and a nominal frame interval.
const vortexRate = 0.002

// Frame is the transform applied to the whole field for one frame.
type Frame struct {
	RotationX float64
	RotationY float64
	RotationZ float64
	Scale     float64
}

// State carries the only quantity that accumulates across frames: the
// integrated vortex rotation around Y.
type State struct {
	RotationY float64
}

// Wobble returns the time-driven part of the frame. It is a pure function
// of p and elapsed (seconds since a fixed epoch); RotationY is left at 0.
func Wobble(p config.Params, elapsed float64) Frame {
	t := elapsed * p.NoiseSpeed
	amp := p.NoiseStrength

	return Frame{
		RotationX: math.Sin(t*0.5) * amp * 0.1,
		RotationZ: math.Cos(t*0.3) * amp * 0.1,
		Scale:     1 + math.Sin(t*2)*amp*0.02,
	}
}

// Advance integrates one frame of vortex rotation. ratio is the actual
// frame interval divided by the nominal one. Negative or NaN speed and
// ratio contribute nothing, so RotationY never decreases.
func Advance(s State, p config.Params, ratio float64) State {
	speed := p.Speed
	if math.IsNaN(speed) || speed < 0 {
		speed = 0
	}
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	s.RotationY += speed * vortexRate * ratio
	return s
}

// Step advances s by one frame and returns the full transform for it.
func Step(p config.Params, s State, elapsed, ratio float64) (Frame, State) {
	s = Advance(s, p, ratio)
	f := Wobble(p, elapsed)
	f.RotationY = s.RotationY
	return f, s
}
