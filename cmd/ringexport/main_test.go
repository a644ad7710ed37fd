package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/preset"
)

func ptr(p config.Params) *config.Params { return &p }

// TestRunWritesScript verifies a plain export lands at -out
func TestRunWritesScript(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, config.ScriptFilename)

	err := run(runOptions{params: ptr(config.Default()), out: out, suffix: 7})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	script := string(data)
	if !strings.Contains(script, "AE_Particle_Ring_7") {
		t.Error("Expected composition name with suffix 7")
	}
	if !strings.Contains(script, `addSlider("1-Radius (半径)", 90);`) {
		t.Error("Expected scaled radius slider 90")
	}
}

// TestRunPresetRoundTrip verifies -save-preset followed by -preset
func TestRunPresetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "presets.db")

	p := config.Default()
	p.Radius = 7.5

	err := run(runOptions{
		params:     &p,
		savePreset: "wide",
		dbPath:     db,
		out:        filepath.Join(dir, "first.jsx"),
		suffix:     1,
	})
	if err != nil {
		t.Fatalf("save run: %v", err)
	}

	store, err := preset.Open(db)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	got, err := store.Load("wide")
	store.Close()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Params.Radius != 7.5 {
		t.Errorf("Expected saved radius 7.5, got %f", got.Params.Radius)
	}

	second := filepath.Join(dir, "second.jsx")
	err = run(runOptions{
		params:     ptr(config.Default()),
		presetName: "wide",
		dbPath:     db,
		out:        second,
		suffix:     1,
	})
	if err != nil {
		t.Fatalf("load run: %v", err)
	}
	data, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// 7.5 * 20
	if !strings.Contains(string(data), `addSlider("1-Radius (半径)", 150);`) {
		t.Error("Expected radius slider 150 from the loaded preset")
	}
}

// TestRunFlagOverridesPreset verifies explicit flags win over a loaded preset
func TestRunFlagOverridesPreset(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "presets.db")

	store, err := preset.Open(db)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	saved := config.Default()
	saved.Radius = 7.5
	saved.Thickness = 3
	if _, err := store.Save("base", saved); err != nil {
		t.Fatalf("save: %v", err)
	}
	store.Close()

	p := config.Default()
	fs := flag.NewFlagSet("ringexport", flag.ContinueOnError)
	config.BindFlags(fs, &p)
	if err := fs.Parse([]string{"-radius", "2"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	out := filepath.Join(dir, "out.jsx")
	err = run(runOptions{params: &p, flags: fs, presetName: "base", dbPath: db, out: out, suffix: 1})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	script := string(data)
	if !strings.Contains(script, `addSlider("1-Radius (半径)", 40);`) {
		t.Error("Expected radius from flag (2 * 20 = 40)")
	}
	if !strings.Contains(script, `addSlider("1-Thickness (圆环厚度)", 30);`) {
		t.Error("Expected thickness from preset (3 * 10 = 30)")
	}
}

// TestRunMissingPreset verifies an unknown preset is an error
func TestRunMissingPreset(t *testing.T) {
	dir := t.TempDir()
	err := run(runOptions{
		params:     ptr(config.Default()),
		presetName: "nope",
		dbPath:     filepath.Join(dir, "presets.db"),
		out:        filepath.Join(dir, "x.jsx"),
	})
	if err == nil {
		t.Fatal("Expected error for missing preset")
	}
}
