package field

import "math"

// Spread summarizes the radial and vertical extent of a field.
type Spread struct {
	MinRadius  float64
	MaxRadius  float64
	MeanRadius float64
	MaxAbsY    float64
}

// Measure computes the Spread of b. An empty field yields the zero Spread.
func Measure(b *Buffers) Spread {
	if b.Len() == 0 {
		return Spread{}
	}

	s := Spread{MinRadius: math.Inf(1), MaxRadius: math.Inf(-1)}
	var sum float64
	for _, p := range b.Positions {
		d := math.Hypot(p.X, p.Z)
		sum += d
		s.MinRadius = math.Min(s.MinRadius, d)
		s.MaxRadius = math.Max(s.MaxRadius, d)
		s.MaxAbsY = math.Max(s.MaxAbsY, math.Abs(p.Y))
	}
	s.MeanRadius = sum / float64(len(b.Positions))
	return s
}
