// Package field synthesizes the static per-particle buffers of the ring.
//
// Buffers are rebuilt from scratch on every regeneration; there is no
// incremental patching. The generator is a pure function of its Params and
// seed, and never touches the caller's Params.
package field

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// Vec3 is a position in preview world units.
type Vec3 struct {
	X, Y, Z float64
}

// RGB is a per-particle color with channels in 0-1.
type RGB struct {
	R, G, B float64
}

// Attr holds the per-particle random attributes, each in [0, 1).
// They are reserved for per-particle shading and motion; the current
// stepper animates the whole field only.
type Attr struct {
	Phase    float64
	SpeedVar float64
	AmpVar   float64
}

// Buffers are three index-aligned slices of equal length.
type Buffers struct {
	Positions []Vec3
	Colors    []RGB
	Randoms   []Attr

	// Seed actually used, so a field can be reproduced.
	Seed int64
}

// Len returns the particle count.
func (b *Buffers) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Positions)
}

// Options controls generation.
type Options struct {
	// Seed for the generator. 0 picks a random seed.
	Seed int64
}

// NewSeed draws a random nonzero seed.
func NewSeed() int64 {
	for {
		if s := rand.Int64(); s != 0 {
			return s
		}
	}
}

// Generate builds a fresh ring particle field for p. Counts above
// config.MaxCount are capped.
func Generate(p config.Params, opts Options) *Buffers {
	p = p.Sanitize()

	seed := opts.Seed
	if seed == 0 {
		seed = NewSeed()
	}
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))

	n := min(p.Count, config.MaxCount)
	b := &Buffers{
		Positions: make([]Vec3, n),
		Colors:    make([]RGB, n),
		Randoms:   make([]Attr, n),
		Seed:      seed,
	}

	for i := 0; i < n; i++ {
		angle := rng.Float64() * 2 * math.Pi
		r := p.Radius + (rng.Float64()-0.5)*p.Thickness

		b.Positions[i] = Vec3{
			X: math.Cos(angle) * r,
			Y: (rng.Float64() - 0.5) * (p.Thickness * 0.4),
			Z: math.Sin(angle) * r,
		}

		c := p.Color.Lerp(p.Color2, rng.Float64())
		b.Colors[i] = RGB{R: c.R, G: c.G, B: c.B}

		b.Randoms[i] = Attr{
			Phase:    rng.Float64(),
			SpeedVar: rng.Float64(),
			AmpVar:   rng.Float64(),
		}
	}

	return b
}
