package preset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/iburimskiy/particle-ring/internal/config"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "presets.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestSaveLoad verifies a preset round trips through the database
func TestSaveLoad(t *testing.T) {
	s := openTemp(t)

	p := config.Default()
	p.Radius = 7.2
	p.Count = 12000
	p.Color2 = config.MustHex("#10b981")

	saved, err := s.Save("emerald", p)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.ID == "" {
		t.Error("Expected a generated ID")
	}

	got, err := s.Load("emerald")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Params.Radius != 7.2 {
		t.Errorf("Expected radius 7.2, got %f", got.Params.Radius)
	}
	if got.Params.Count != 12000 {
		t.Errorf("Expected count 12000, got %d", got.Params.Count)
	}
	if got.Params.Color2.String() != "#10b981" {
		t.Errorf("Expected color2 #10b981, got %s", got.Params.Color2)
	}
	if got.ID != saved.ID {
		t.Errorf("Expected ID %s, got %s", saved.ID, got.ID)
	}
}

// TestSaveReplaces verifies saving under an existing name overwrites it
func TestSaveReplaces(t *testing.T) {
	s := openTemp(t)

	p := config.Default()
	if _, err := s.Save("ring", p); err != nil {
		t.Fatalf("save: %v", err)
	}
	p.Speed = 4.2
	if _, err := s.Save("ring", p); err != nil {
		t.Fatalf("resave: %v", err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 preset, got %d", len(list))
	}
	if list[0].Params.Speed != 4.2 {
		t.Errorf("Expected speed 4.2, got %f", list[0].Params.Speed)
	}
}

// TestSaveSanitizes verifies stored snapshots are clamped
func TestSaveSanitizes(t *testing.T) {
	s := openTemp(t)

	p := config.Default()
	p.Count = -5
	if _, err := s.Save("broken", p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load("broken")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Params.Count != 0 {
		t.Errorf("Expected count clamped to 0, got %d", got.Params.Count)
	}
}

// TestNotFound verifies missing presets report ErrNotFound
func TestNotFound(t *testing.T) {
	s := openTemp(t)

	if _, err := s.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Load, got %v", err)
	}
	if err := s.Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound from Delete, got %v", err)
	}
	if _, err := s.Save("", config.Default()); err == nil {
		t.Error("Expected error for empty name")
	}
}

// TestDelete verifies removal
func TestDelete(t *testing.T) {
	s := openTemp(t)

	for _, name := range []string{"a", "b"} {
		if _, err := s.Save(name, config.Default()); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}
	if err := s.Delete("a"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Name != "b" {
		t.Errorf("Expected only preset b to remain, got %+v", list)
	}
}
