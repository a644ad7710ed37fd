// Package preset stores named parameter snapshots in SQLite.
package preset

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/iburimskiy/particle-ring/internal/config"
)

// ErrNotFound is returned when no preset has the requested name.
var ErrNotFound = errors.New("preset not found")

// Preset is a stored parameter snapshot.
type Preset struct {
	ID        string
	Name      string
	CreatedAt time.Time
	Params    config.Params
}

type row struct {
	ID         string `db:"id"`
	Name       string `db:"name"`
	CreatedAt  int64  `db:"created_at"`
	ParamsJSON string `db:"params_json"`
}

func (r row) preset() (Preset, error) {
	p := config.Default()
	if err := json.Unmarshal([]byte(r.ParamsJSON), &p); err != nil {
		return Preset{}, fmt.Errorf("decode preset %q: %w", r.Name, err)
	}
	return Preset{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: time.Unix(r.CreatedAt, 0).UTC(),
		Params:    p,
	}, nil
}

// Store wraps a SQLite connection holding presets.
type Store struct {
	conn *sqlx.DB
}

// Open opens or creates the preset database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS presets (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		created_at INTEGER NOT NULL,
		params_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_presets_created ON presets(created_at);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Save stores p under name, replacing any preset with the same name. The
// stored snapshot is sanitized.
func (s *Store) Save(name string, p config.Params) (Preset, error) {
	if name == "" {
		return Preset{}, errors.New("preset name is empty")
	}

	p = p.Sanitize()
	data, err := json.Marshal(p)
	if err != nil {
		return Preset{}, fmt.Errorf("encode preset: %w", err)
	}

	saved := Preset{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Params:    p,
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return Preset{}, err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM presets WHERE name = ?", name); err != nil {
		return Preset{}, fmt.Errorf("replace preset %q: %w", name, err)
	}
	_, err = tx.Exec(
		"INSERT INTO presets (id, name, created_at, params_json) VALUES (?, ?, ?, ?)",
		saved.ID, saved.Name, saved.CreatedAt.Unix(), string(data),
	)
	if err != nil {
		return Preset{}, fmt.Errorf("insert preset %q: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return Preset{}, err
	}

	slog.Debug("preset saved", "name", name, "id", saved.ID)
	return saved, nil
}

// Load returns the preset called name.
func (s *Store) Load(name string) (Preset, error) {
	var r row
	err := s.conn.Get(&r, "SELECT id, name, created_at, params_json FROM presets WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return Preset{}, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return Preset{}, fmt.Errorf("load preset %q: %w", name, err)
	}
	return r.preset()
}

// List returns all presets, oldest first.
func (s *Store) List() ([]Preset, error) {
	var rows []row
	err := s.conn.Select(&rows, "SELECT id, name, created_at, params_json FROM presets ORDER BY created_at, name")
	if err != nil {
		return nil, fmt.Errorf("list presets: %w", err)
	}

	out := make([]Preset, 0, len(rows))
	for _, r := range rows {
		p, err := r.preset()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Delete removes the preset called name.
func (s *Store) Delete(name string) error {
	res, err := s.conn.Exec("DELETE FROM presets WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("delete preset %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	return nil
}
