package game

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/particle-ring/internal/capture"
	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/scene"
)

const (
	// uint16 indices address at most 65536 vertices, four per quad.
	maxQuadsPerBatch = 65532 / 4

	particleOpacity = 0.8
)

// Export button, top right
const (
	buttonWidth  = 150
	buttonHeight = 40
	buttonX      = config.WindowWidth - buttonWidth - 20
	buttonY      = 20
)

var background = color.RGBA{R: 5, G: 5, B: 10, A: 255}

func (g *game) initRender() {
	g.canvas = ebiten.NewImage(config.WindowWidth, config.WindowHeight)

	size := config.SpriteSize
	g.sprite = ebiten.NewImage(size, size)
	g.sprite.WritePixels(scene.SpritePixels(size))

	g.vignette = ebiten.NewImage(config.WindowWidth, config.WindowHeight)
	g.vignette.WritePixels(scene.VignettePixels(
		config.WindowWidth, config.WindowHeight,
		config.VignetteOffset, config.VignetteDarkness,
	))

	glow, err := newBloom(config.WindowWidth, config.WindowHeight)
	if err != nil {
		slog.Warn("glow disabled", "error", err)
	}
	g.glow = glow
}

func (g *game) render() {
	g.canvas.Fill(background)
	g.drawParticles(g.canvas)
	if g.glow != nil {
		g.glow.apply(g.canvas, g.params)
	}
	g.canvas.DrawImage(g.vignette, nil)
}

// drawParticles projects every particle and draws it as a camera-facing
// sprite quad. Quads are flushed in batches that fit uint16 indices.
func (g *game) drawParticles(dst *ebiten.Image) {
	b := g.buffers.Load()
	if b.Len() == 0 {
		return
	}

	cam := scene.NewCamera(config.WindowWidth, config.WindowHeight, g.dolly.Distance())
	proj := cam.View(g.frame)
	sw := float32(config.SpriteSize)

	op := &ebiten.DrawTrianglesOptions{
		Blend:  ebiten.BlendLighter,
		Filter: ebiten.FilterLinear,
	}

	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	flush := func() {
		if len(g.indices) > 0 {
			dst.DrawTriangles(g.vertices, g.indices, g.sprite, op)
		}
		g.vertices = g.vertices[:0]
		g.indices = g.indices[:0]
	}

	for i, p := range b.Positions {
		x, y, depth, ok := proj.Project(p)
		if !ok {
			continue
		}
		half := float32(proj.PointSize(g.params.Size, depth) / 2)
		if half <= 0 {
			continue
		}

		c := b.Colors[i]
		r, gr, bl := float32(c.R), float32(c.G), float32(c.B)
		fx, fy := float32(x), float32(y)

		base := uint16(len(g.vertices))
		g.vertices = append(g.vertices,
			ebiten.Vertex{DstX: fx - half, DstY: fy - half, SrcX: 0, SrcY: 0, ColorR: r, ColorG: gr, ColorB: bl, ColorA: particleOpacity},
			ebiten.Vertex{DstX: fx + half, DstY: fy - half, SrcX: sw, SrcY: 0, ColorR: r, ColorG: gr, ColorB: bl, ColorA: particleOpacity},
			ebiten.Vertex{DstX: fx - half, DstY: fy + half, SrcX: 0, SrcY: sw, ColorR: r, ColorG: gr, ColorB: bl, ColorA: particleOpacity},
			ebiten.Vertex{DstX: fx + half, DstY: fy + half, SrcX: sw, SrcY: sw, ColorR: r, ColorG: gr, ColorB: bl, ColorA: particleOpacity},
		)
		g.indices = append(g.indices, base, base+1, base+2, base+1, base+3, base+2)

		if len(g.vertices) >= maxQuadsPerBatch*4 {
			flush()
		}
	}
	flush()
}

// captureFrame feeds the recorder and takes a pending snapshot from the
// composited canvas, before the HUD is drawn.
func (g *game) captureFrame() {
	wantFrame := g.recorder.Want()
	if !wantFrame && !g.snapshotPending {
		return
	}

	img := readCanvas(g.canvas)
	if wantFrame {
		g.recorder.Submit(img)
	}
	if g.snapshotPending {
		g.snapshotPending = false
		g.saveSnapshot(img)
	}
}

func (g *game) drawHUD(screen *ebiten.Image) {
	g.drawButton(screen)

	b := g.buffers.Load()
	info := fmt.Sprintf("Particles: %s  Seed: %d  FPS: %.0f  Zoom: %.1f",
		humanize.Comma(int64(b.Len())), b.Seed, g.pacer.FPS(), g.dolly.Distance())
	ebitenutil.DebugPrintAt(screen, info, 12, 12)

	p := g.params
	line := fmt.Sprintf("R %.1f  T %.1f  Speed %.1f  Size %.2f  Glow %.1f/%.1f/%.2f  %s -> %s",
		p.Radius, p.Thickness, p.Speed, p.Size,
		p.GlowIntensity, p.GlowRadius, p.GlowThreshold, p.Color, p.Color2)
	ebitenutil.DebugPrintAt(screen, line, 12, 28)

	if g.recorder.State() == capture.Recording {
		rec := fmt.Sprintf("REC %s  %s frames", formatDuration(g.recorder.Elapsed(time.Now())),
			humanize.Comma(g.recorder.Frames()))
		vector.DrawFilledCircle(screen, 18, 52, 5, color.RGBA{R: 230, G: 40, B: 40, A: 255}, true)
		ebitenutil.DebugPrintAt(screen, rec, 28, 44)
	}

	help := "E export  P snapshot  R record  S save preset  N reseed  [ ] count  - = radius  ; ' thickness  , . speed  Z X zoom  Esc quit"
	ebitenutil.DebugPrintAt(screen, help, 12, config.WindowHeight-24)

	status := g.status
	if g.lastErr != nil {
		status = "Error: " + g.lastErr.Error()
	}
	if status != "" {
		ebitenutil.DebugPrintAt(screen, status, 12, config.WindowHeight-44)
	}
}

func (g *game) drawButton(screen *ebiten.Image) {
	var bgColor color.Color
	switch {
	case g.exporting:
		bgColor = color.RGBA{R: 60, G: 50, B: 90, A: 255}
	case g.buttonPressed:
		bgColor = color.RGBA{R: 70, G: 40, B: 120, A: 255}
	case g.buttonHovered:
		bgColor = color.RGBA{R: 120, G: 70, B: 190, A: 255}
	default:
		bgColor = color.RGBA{R: 100, G: 60, B: 160, A: 255}
	}

	vector.DrawFilledRect(screen, buttonX, buttonY, buttonWidth, buttonHeight, bgColor, false)
	vector.StrokeRect(screen, buttonX, buttonY, buttonWidth, buttonHeight, 2, color.RGBA{R: 168, G: 85, B: 247, A: 255}, false)

	text := "Export AE Script"
	if g.exporting {
		text = "Exporting..."
	}
	textWidth := len(text) * 6
	ebitenutil.DebugPrintAt(screen, text, buttonX+(buttonWidth-textWidth)/2, buttonY+(buttonHeight-16)/2)
}
