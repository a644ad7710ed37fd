package capture

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// State of a Recorder.
type State int

const (
	Idle State = iota
	Recording
)

func (s State) String() string {
	if s == Recording {
		return "recording"
	}
	return "idle"
}

// Recorder is a two-state toggle that streams preview frames to a numbered
// PNG sequence. Frames are encoded on a background goroutine; when it falls
// behind, new frames are dropped rather than stalling the render loop.
type Recorder struct {
	base  string
	every int

	state   State
	dir     string
	started time.Time
	tick    int

	frames  chan image.Image
	done    chan error
	written atomic.Int64
	dropped atomic.Int64
}

// NewRecorder returns an idle recorder that creates sequence directories
// under base and keeps one frame out of every.
func NewRecorder(base string, every int) *Recorder {
	if every <= 0 {
		every = 1
	}
	return &Recorder{base: base, every: every}
}

func (r *Recorder) State() State { return r.state }

// Dir returns the current or last sequence directory.
func (r *Recorder) Dir() string { return r.dir }

// Frames returns how many frames of the current or last sequence were written.
func (r *Recorder) Frames() int64 { return r.written.Load() }

// Elapsed returns how long the current sequence has been recording.
func (r *Recorder) Elapsed(now time.Time) time.Duration {
	if r.state != Recording {
		return 0
	}
	return now.Sub(r.started)
}

// Toggle starts a new sequence when idle, or stops and flushes the current
// one. The returned state is the state after the toggle.
func (r *Recorder) Toggle(now time.Time) (State, error) {
	if r.state == Recording {
		return Idle, r.stop()
	}
	return r.start(now)
}

func (r *Recorder) start(now time.Time) (State, error) {
	dir := filepath.Join(r.base, fmt.Sprintf("%s_%s", config.SequencePrefix, now.Format("20060102_150405")))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Idle, fmt.Errorf("create sequence dir: %w", err)
	}

	r.dir = dir
	r.started = now
	r.tick = 0
	r.written.Store(0)
	r.dropped.Store(0)
	r.frames = make(chan image.Image, config.RecordQueueLen)
	r.done = make(chan error, 1)
	r.state = Recording

	go r.write(dir, r.frames, r.done)

	slog.Info("recording started", "dir", dir)
	return Recording, nil
}

func (r *Recorder) stop() error {
	close(r.frames)
	err := <-r.done
	r.state = Idle
	r.frames = nil

	slog.Info("recording stopped",
		"dir", r.dir,
		"frames", r.written.Load(),
		"dropped", r.dropped.Load(),
	)
	return err
}

// Want reports whether the current frame should be captured. Call it once
// per rendered frame.
func (r *Recorder) Want() bool {
	if r.state != Recording {
		return false
	}
	want := r.tick%r.every == 0
	r.tick++
	return want
}

// Submit queues a frame for writing without blocking.
func (r *Recorder) Submit(img image.Image) {
	if r.state != Recording || img == nil {
		return
	}
	select {
	case r.frames <- img:
	default:
		r.dropped.Add(1)
	}
}

func (r *Recorder) write(dir string, frames <-chan image.Image, done chan<- error) {
	var firstErr error
	n := 0
	for img := range frames {
		if firstErr != nil {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("frame_%05d.png", n))
		if err := WritePNG(img, path); err != nil {
			firstErr = err
			slog.Warn("frame write failed", "path", path, "error", err)
			continue
		}
		n++
		r.written.Add(1)
	}
	done <- firstErr
}
