package game

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/ncruces/zenity"

	"github.com/iburimskiy/particle-ring/internal/aescript"
	"github.com/iburimskiy/particle-ring/internal/capture"
	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/cue"
	"github.com/iburimskiy/particle-ring/internal/field"
)

const statusTTL = 4 * time.Second

type actionKind int

const (
	actionExport actionKind = iota
	actionSnapshot
	actionPreset
)

// result is posted by background actions and consumed in Update.
type result struct {
	kind     actionKind
	message  string
	err      error
	canceled bool
}

func (g *game) post(r result) {
	select {
	case g.results <- r:
	default:
		slog.Warn("action result dropped", "message", r.message, "error", r.err)
	}
}

func (g *game) drainResults(now time.Time) {
	for {
		select {
		case r := <-g.results:
			g.finish(r, now)
		default:
			if !g.statusUntil.IsZero() && now.After(g.statusUntil) {
				g.status = ""
				g.lastErr = nil
				g.statusUntil = time.Time{}
			}
			return
		}
	}
}

func (g *game) finish(r result, now time.Time) {
	if r.kind == actionExport {
		g.exporting = false
	}
	switch {
	case r.canceled:
		return
	case r.err != nil:
		g.lastErr = r.err
		g.opts.Cues.Play(cue.Failure)
	default:
		g.status = r.message
		g.lastErr = nil
		switch r.kind {
		case actionExport:
			g.opts.Cues.Play(cue.Export)
		case actionSnapshot:
			g.opts.Cues.Play(cue.Snapshot)
		}
	}
	g.statusUntil = now.Add(statusTTL)
}

func (g *game) setStatus(msg string) {
	g.status = msg
	g.lastErr = nil
	g.statusUntil = time.Now().Add(statusTTL)
}

// exportScript renders the current parameters to an After Effects script
// and writes it where the user chooses. Only one export runs at a time.
func (g *game) exportScript() {
	if g.exporting {
		return
	}
	g.exporting = true

	p := g.params
	go func() {
		script := aescript.Emit(p, aescript.DefaultOptions())

		path, err := g.exportPath()
		if errors.Is(err, zenity.ErrCanceled) {
			g.post(result{kind: actionExport, canceled: true})
			return
		}
		if err != nil {
			g.post(result{kind: actionExport, err: err})
			return
		}

		if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
			g.post(result{kind: actionExport, err: fmt.Errorf("write script: %w", err)})
			return
		}

		slog.Info("script exported", "path", path, "size", humanize.Bytes(uint64(len(script))))
		g.post(result{kind: actionExport, message: "Exported " + filepath.Base(path)})
	}()
}

// exportPath asks for a destination when dialogs are enabled. An unavailable
// dialog falls back to the output directory; a canceled one is returned as
// zenity.ErrCanceled.
func (g *game) exportPath() (string, error) {
	fallback := filepath.Join(g.opts.OutDir, config.ScriptFilename)
	if !g.opts.Dialogs {
		return fallback, nil
	}

	path, err := zenity.SelectFileSave(
		zenity.Title("Export After Effects Script"),
		zenity.Filename(config.ScriptFilename),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     "ExtendScript",
			Patterns: []string{"*.jsx"},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", err
	}
	if err != nil {
		slog.Warn("save dialog unavailable, using output directory", "error", err, "path", fallback)
		return fallback, nil
	}
	if filepath.Ext(path) == "" {
		path += ".jsx"
	}
	return path, nil
}

// readCanvas copies the composited canvas into CPU memory.
func readCanvas(canvas *ebiten.Image) *image.RGBA {
	if canvas == nil {
		return nil
	}
	b := canvas.Bounds()
	img := image.NewRGBA(b)
	canvas.ReadPixels(img.Pix)
	return img
}

func (g *game) saveSnapshot(img *image.RGBA) {
	path := filepath.Join(g.opts.OutDir, config.SnapshotFilename)
	go func() {
		var src image.Image
		if img != nil {
			src = img
		}
		err := capture.WritePNG(src, path)
		if errors.Is(err, capture.ErrNoSurface) {
			slog.Debug("snapshot skipped, no canvas")
			return
		}
		if err != nil {
			g.post(result{kind: actionSnapshot, err: fmt.Errorf("snapshot: %w", err)})
			return
		}
		slog.Info("snapshot saved", "path", path)
		g.post(result{kind: actionSnapshot, message: "Saved " + filepath.Base(path)})
	}()
}

func (g *game) toggleRecording(now time.Time) {
	state, err := g.recorder.Toggle(now)
	if err != nil {
		g.lastErr = err
		g.statusUntil = now.Add(statusTTL)
		g.opts.Cues.Play(cue.Failure)
		return
	}

	if state == capture.Recording {
		g.setStatus("Recording to " + filepath.Base(g.recorder.Dir()))
		g.opts.Cues.Play(cue.RecordStart)
		return
	}
	g.setStatus(fmt.Sprintf("Saved %s frames to %s",
		humanize.Comma(g.recorder.Frames()), filepath.Base(g.recorder.Dir())))
	g.opts.Cues.Play(cue.RecordStop)
}

// savePreset stores the current parameters under a name, asked for when
// dialogs are enabled and generated otherwise.
func (g *game) savePreset(now time.Time) {
	store := g.opts.Store
	if store == nil {
		g.setStatus("Preset store unavailable")
		return
	}

	p := g.params
	name := "preset-" + now.Format("20060102-150405")
	dialogs := g.opts.Dialogs
	go func() {
		if dialogs {
			entered, err := zenity.Entry("Preset name:",
				zenity.Title("Save Preset"),
				zenity.EntryText(name),
			)
			switch {
			case errors.Is(err, zenity.ErrCanceled):
				g.post(result{kind: actionPreset, canceled: true})
				return
			case err != nil:
				slog.Warn("name dialog unavailable, using generated name", "error", err)
			case strings.TrimSpace(entered) != "":
				name = strings.TrimSpace(entered)
			}
		}

		saved, err := store.Save(name, p)
		if err != nil {
			g.post(result{kind: actionPreset, err: err})
			return
		}
		slog.Info("preset saved", "name", saved.Name, "id", saved.ID)
		g.post(result{kind: actionPreset, message: "Saved preset " + saved.Name})
	}()
}

// reseed draws a new field layout with the same parameters. The new seed
// stays pinned so later geometry edits keep the layout reproducible.
func (g *game) reseed() {
	g.opts.Seed = field.NewSeed()
	g.regenerate()
	g.setStatus(fmt.Sprintf("Seed %d", g.buffers.Load().Seed))
}
