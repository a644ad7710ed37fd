// Command ringexport writes the After Effects particle ring script without
// opening a window. Every look parameter is a flag, and looks can be saved
// to and loaded from the preset database shared with the preview.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/iburimskiy/particle-ring/internal/aescript"
	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/field"
	"github.com/iburimskiy/particle-ring/internal/preset"
)

func main() {
	params := config.Default()
	config.BindFlags(flag.CommandLine, &params)

	var (
		presetArg  = flag.String("preset", "", "load a saved preset before applying flags")
		savePreset = flag.String("save-preset", "", "save the resulting parameters under this name")
		list       = flag.Bool("list", false, "list saved presets and exit")
		dbPath     = flag.String("db", config.PresetDBPath, "preset database path")
		seed       = flag.Int64("seed", 0, "field seed for -stats (0 = random)")
		out        = flag.String("out", config.ScriptFilename, "output script path, - for stdout")
		suffix     = flag.Int("suffix", -1, "composition name suffix (-1 = random 0-999)")
		stats      = flag.Bool("stats", false, "generate the particle field and log its spread")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(runOptions{
		params:     &params,
		flags:      flag.CommandLine,
		presetName: *presetArg,
		savePreset: *savePreset,
		list:       *list,
		dbPath:     *dbPath,
		seed:       *seed,
		out:        *out,
		suffix:     *suffix,
		stats:      *stats,
	}); err != nil {
		slog.Error("ringexport failed", "error", err)
		os.Exit(1)
	}
}

// runOptions carries the parsed command line. params is the flag-bound
// value; flags set explicitly on flags override a loaded preset.
type runOptions struct {
	params     *config.Params
	flags      *flag.FlagSet
	presetName string
	savePreset string
	list       bool
	dbPath     string
	seed       int64
	out        string
	suffix     int
	stats      bool
}

func run(o runOptions) error {
	needStore := o.list || o.presetName != "" || o.savePreset != ""

	var store *preset.Store
	if needStore {
		s, err := preset.Open(o.dbPath)
		if err != nil {
			return fmt.Errorf("open presets: %w", err)
		}
		defer s.Close()
		store = s
	}

	if o.list {
		return listPresets(store)
	}

	if o.presetName != "" {
		loaded, err := store.Load(o.presetName)
		if err != nil {
			return err
		}
		if o.flags != nil {
			if err := config.Overlay(o.flags, o.params, loaded.Params); err != nil {
				return err
			}
		} else {
			*o.params = loaded.Params
		}
		slog.Info("preset loaded", "name", loaded.Name)
	}
	p := o.params.Sanitize()

	if o.savePreset != "" {
		saved, err := store.Save(o.savePreset, p)
		if err != nil {
			return err
		}
		slog.Info("preset saved", "name", saved.Name, "id", saved.ID)
	}

	if o.stats {
		logStats(p, o.seed)
	}

	opts := aescript.DefaultOptions()
	if o.suffix >= 0 {
		opts.Suffix = strconv.Itoa(o.suffix)
	}
	script := aescript.Emit(p, opts)

	if o.out == "-" {
		_, err := os.Stdout.WriteString(script)
		return err
	}
	if err := os.WriteFile(o.out, []byte(script), 0o644); err != nil {
		return fmt.Errorf("write script: %w", err)
	}
	slog.Info("script written", "path", o.out, "size", humanize.Bytes(uint64(len(script))))
	return nil
}

func listPresets(store *preset.Store) error {
	presets, err := store.List()
	if err != nil {
		return err
	}
	if len(presets) == 0 {
		fmt.Println("no presets saved")
		return nil
	}
	for _, ps := range presets {
		fmt.Printf("%-24s  %s  radius=%g count=%s colors=%s/%s\n",
			ps.Name,
			humanize.Time(ps.CreatedAt),
			ps.Params.Radius,
			humanize.Comma(int64(ps.Params.Count)),
			ps.Params.Color, ps.Params.Color2,
		)
	}
	return nil
}

func logStats(p config.Params, seed int64) {
	started := time.Now()
	b := field.Generate(p, field.Options{Seed: seed})
	s := field.Measure(b)
	slog.Info("field stats",
		"count", humanize.Comma(int64(b.Len())),
		"seed", b.Seed,
		"min_radius", fmt.Sprintf("%.3f", s.MinRadius),
		"max_radius", fmt.Sprintf("%.3f", s.MaxRadius),
		"mean_radius", fmt.Sprintf("%.3f", s.MeanRadius),
		"max_abs_y", fmt.Sprintf("%.3f", s.MaxAbsY),
		"took", time.Since(started),
	)
}
