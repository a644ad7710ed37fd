// Package capture writes still snapshots and frame sequences of the preview.
package capture

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
)

// ErrNoSurface is returned when there is nothing to capture. Callers treat
// it as a skipped action, not a failure.
var ErrNoSurface = errors.New("no drawable surface")

// WritePNG encodes img to path, creating parent directories as needed.
func WritePNG(img image.Image, path string) error {
	if img == nil {
		return ErrNoSurface
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
