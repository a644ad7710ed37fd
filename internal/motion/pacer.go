package motion

import (
	"time"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// Pacer records the last N frame intervals in a ring buffer so the stepper
// can normalize rotation for uneven frame delivery.
type Pacer struct {
	nominal   time.Duration
	buffer    []time.Duration
	nextIndex int
	filled    int
	last      time.Time
}

// NewPacer returns a Pacer for the given nominal tick rate, averaging over
// the last window intervals.
func NewPacer(tps, window int) *Pacer {
	if tps <= 0 {
		tps = config.TargetTPS
	}
	if window <= 0 {
		window = 1
	}
	return &Pacer{
		nominal: time.Second / time.Duration(tps),
		buffer:  make([]time.Duration, window),
	}
}

// Observe records a frame delivered at now. The first call only sets the
// reference point.
func (p *Pacer) Observe(now time.Time) {
	if !p.last.IsZero() {
		d := now.Sub(p.last)
		if d < 0 {
			d = 0
		}
		p.buffer[p.nextIndex] = d
		p.nextIndex++
		if p.nextIndex >= len(p.buffer) {
			p.nextIndex = 0
		}
		if p.filled < len(p.buffer) {
			p.filled++
		}
	}
	p.last = now
}

// Ratio returns the smoothed frame interval relative to the nominal one,
// clamped to [0, MaxFrameRatio]. With no observations it is 1.
func (p *Pacer) Ratio() float64 {
	if p.filled == 0 {
		return 1
	}
	r := float64(p.mean()) / float64(p.nominal)
	if r > config.MaxFrameRatio {
		r = config.MaxFrameRatio
	}
	return r
}

// FPS returns the smoothed frames per second, or 0 before two observations.
func (p *Pacer) FPS() float64 {
	m := p.mean()
	if m <= 0 {
		return 0
	}
	return float64(time.Second) / float64(m)
}

func (p *Pacer) mean() time.Duration {
	if p.filled == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range p.buffer[:p.filled] {
		sum += d
	}
	return sum / time.Duration(p.filled)
}
