package scene

import (
	"github.com/charmbracelet/harmonica"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// Dolly eases the displayed camera distance toward the configured zoom so
// zoom changes glide instead of jumping.
type Dolly struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

// NewDolly starts at distance, already at rest.
func NewDolly(distance float64) *Dolly {
	return &Dolly{
		spring: harmonica.NewSpring(harmonica.FPS(config.TargetTPS), 6.0, 1.0),
		pos:    distance,
	}
}

// Update advances one tick toward target and returns the new distance.
func (d *Dolly) Update(target float64) float64 {
	d.pos, d.vel = d.spring.Update(d.pos, d.vel, target)
	return d.pos
}

func (d *Dolly) Distance() float64 { return d.pos }
