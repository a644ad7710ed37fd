// Package cue plays short synthesized confirmation sounds for preview
// actions. Audio is optional: if the speaker cannot be initialized the
// player stays silent.
package cue

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
)

// SampleRate of the synthesized cues.
const SampleRate beep.SampleRate = 44100

const (
	amplitude = 0.25
	fadeTime  = 5 * time.Millisecond
	gapTime   = 30 * time.Millisecond
)

// Kind names the action a cue confirms.
type Kind int

const (
	Export Kind = iota
	Snapshot
	RecordStart
	RecordStop
	Failure
)

type note struct {
	freq float64
	dur  time.Duration
}

var melodies = map[Kind][]note{
	Export:      {{660, 70 * time.Millisecond}, {880, 110 * time.Millisecond}},
	Snapshot:    {{1320, 40 * time.Millisecond}},
	RecordStart: {{440, 80 * time.Millisecond}, {660, 80 * time.Millisecond}},
	RecordStop:  {{660, 80 * time.Millisecond}, {440, 80 * time.Millisecond}},
	Failure:     {{220, 180 * time.Millisecond}},
}

// Tone returns a sine tone with short linear fades at both ends.
func Tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	fade := sr.N(fadeTime)
	if fade*2 > total {
		fade = total / 2
	}
	step := 2 * math.Pi * freq / float64(sr)
	pos := 0

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		if pos >= total {
			return 0, false
		}
		for i := range samples {
			if pos >= total {
				return i, true
			}
			env := 1.0
			if fade > 0 {
				switch {
				case pos < fade:
					env = float64(pos) / float64(fade)
				case pos >= total-fade:
					env = float64(total-pos) / float64(fade)
				}
			}
			v := math.Sin(step*float64(pos)) * env * amplitude
			samples[i][0], samples[i][1] = v, v
			pos++
		}
		return len(samples), true
	})
}

// Melody returns the streamer for k: its notes separated by short gaps.
func Melody(k Kind) beep.Streamer {
	notes := melodies[k]
	parts := make([]beep.Streamer, 0, len(notes)*2)
	for i, n := range notes {
		if i > 0 {
			parts = append(parts, beep.Silence(SampleRate.N(gapTime)))
		}
		parts = append(parts, Tone(SampleRate, n.freq, n.dur))
	}
	return beep.Seq(parts...)
}

// Player plays cues on the default audio device. A nil Player is silent.
type Player struct {
	enabled bool
	once    sync.Once
	ready   bool
}

func NewPlayer(enabled bool) *Player {
	return &Player{enabled: enabled}
}

// Play starts cue k and returns immediately.
func (p *Player) Play(k Kind) {
	if p == nil || !p.enabled {
		return
	}
	p.once.Do(func() {
		if err := speaker.Init(SampleRate, SampleRate.N(time.Second/20)); err != nil {
			slog.Debug("audio cues disabled", "error", err)
			return
		}
		p.ready = true
	})
	if !p.ready {
		return
	}
	speaker.Play(Melody(k))
}
