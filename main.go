// Command particle-ring opens a live preview of the particle ring and
// exports the current look as an After Effects script.
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/cue"
	"github.com/iburimskiy/particle-ring/internal/game"
	"github.com/iburimskiy/particle-ring/internal/preset"
)

func main() {
	params := config.Default()
	config.BindFlags(flag.CommandLine, &params)

	var (
		seed      = flag.Int64("seed", 0, "field seed (0 = random)")
		presetArg = flag.String("preset", "", "load a saved preset before applying flags")
		dbPath    = flag.String("db", config.PresetDBPath, "preset database path")
		outDir    = flag.String("out", ".", "directory for exports, snapshots and recordings")
		noDialogs = flag.Bool("no-dialogs", false, "write exports to -out without a save dialog")
		mute      = flag.Bool("mute", false, "disable audio cues")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	store, err := preset.Open(*dbPath)
	if err != nil {
		if *presetArg != "" {
			slog.Error("failed to open preset database", "path", *dbPath, "error", err)
			os.Exit(1)
		}
		slog.Warn("presets unavailable", "path", *dbPath, "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	if *presetArg != "" {
		p, err := store.Load(*presetArg)
		if err != nil {
			slog.Error("failed to load preset", "name", *presetArg, "error", err)
			os.Exit(1)
		}
		if err := config.Overlay(flag.CommandLine, &params, p.Params); err != nil {
			slog.Error("invalid flags", "error", err)
			os.Exit(1)
		}
		slog.Info("preset loaded", "name", p.Name)
	}

	g := game.New(game.Options{
		Params:  params.Sanitize(),
		Seed:    *seed,
		OutDir:  *outDir,
		Dialogs: !*noDialogs,
		Store:   store,
		Cues:    cue.NewPlayer(!*mute),
	})

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle("Particle Ring - E: export AE script, P: snapshot, R: record, Esc/Q: quit")
	ebiten.SetTPS(config.TargetTPS)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		slog.Error("preview failed", "error", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
