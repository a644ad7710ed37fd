package game

import (
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-ring/internal/capture"
	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/cue"
	"github.com/iburimskiy/particle-ring/internal/field"
	"github.com/iburimskiy/particle-ring/internal/motion"
	"github.com/iburimskiy/particle-ring/internal/preset"
	"github.com/iburimskiy/particle-ring/internal/scene"
)

// Options configure a preview window.
type Options struct {
	Params config.Params

	// Seed for field generation; 0 draws a fresh seed on every regeneration.
	Seed int64

	// OutDir receives exports when no save dialog is available.
	OutDir string

	// Dialogs enables native save dialogs.
	Dialogs bool

	Store *preset.Store // optional
	Cues  *cue.Player   // optional
}

type game struct {
	opts Options

	// params is only touched on the update goroutine. Background actions get
	// value copies.
	params   config.Params
	geometry config.Geometry
	buffers  atomic.Pointer[field.Buffers]

	// animation
	start time.Time
	state motion.State
	frame motion.Frame
	pacer *motion.Pacer
	dolly *scene.Dolly

	// rendering
	canvas   *ebiten.Image
	sprite   *ebiten.Image
	vignette *ebiten.Image
	glow     *bloom
	vertices []ebiten.Vertex
	indices  []uint16

	// capture
	recorder        *capture.Recorder
	snapshotPending bool

	// export button
	buttonHovered bool
	buttonPressed bool
	exporting     bool

	// background action results
	results     chan result
	status      string
	statusUntil time.Time
	lastErr     error
}

// New builds the preview game. Generation happens immediately so the first
// frame already has particles.
func New(opts Options) *game {
	if opts.OutDir == "" {
		opts.OutDir = "."
	}

	g := &game{
		opts:     opts,
		params:   opts.Params,
		start:    time.Now(),
		pacer:    motion.NewPacer(config.TargetTPS, config.FrameWindowSize),
		dolly:    scene.NewDolly(opts.Params.CameraZoom),
		recorder: capture.NewRecorder(opts.OutDir, config.RecordEvery),
		results:  make(chan result, 16),
		frame:    motion.Frame{Scale: 1},
	}
	g.regenerate()
	g.initRender()
	return g
}

// Buffers returns the currently published particle field.
func (g *game) Buffers() *field.Buffers {
	return g.buffers.Load()
}

func (g *game) Update() error {
	now := time.Now()
	g.pacer.Observe(now)

	if g.handleInput(now) {
		g.shutdown()
		return ebiten.Termination
	}

	if g.params.Geometry() != g.geometry {
		g.regenerate()
	}

	elapsed := now.Sub(g.start).Seconds()
	g.frame, g.state = motion.Step(g.params, g.state, elapsed, g.pacer.Ratio())
	g.dolly.Update(g.params.CameraZoom)

	g.drainResults(now)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.render()
	screen.DrawImage(g.canvas, nil)
	g.captureFrame()
	g.drawHUD(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.WindowWidth, config.WindowHeight
}

// regenerate rebuilds the field and publishes it in one swap; the previous
// buffers stay in use until the new ones are complete.
func (g *game) regenerate() {
	started := time.Now()
	b := field.Generate(g.params, field.Options{Seed: g.opts.Seed})
	g.buffers.Store(b)
	g.geometry = g.params.Geometry()

	slog.Debug("field regenerated",
		"count", b.Len(),
		"seed", b.Seed,
		"took", time.Since(started),
	)
}

func (g *game) shutdown() {
	if g.recorder.State() == capture.Recording {
		if _, err := g.recorder.Toggle(time.Now()); err != nil {
			slog.Warn("recording flush failed", "error", err)
		}
	}
}
