package scene

import "testing"

func alphaAt(pix []byte, size, x, y int) byte {
	return pix[(y*size+x)*4+3]
}

// TestSpriteFalloff verifies the radial alpha falloff
func TestSpriteFalloff(t *testing.T) {
	const size = 32
	pix := SpritePixels(size)

	if len(pix) != size*size*4 {
		t.Fatalf("Expected %d bytes, got %d", size*size*4, len(pix))
	}

	center := alphaAt(pix, size, 16, 16)
	mid := alphaAt(pix, size, 24, 16)
	corner := alphaAt(pix, size, 0, 0)

	if center < 230 {
		t.Errorf("Expected near-opaque center, got %d", center)
	}
	if !(center > mid && mid > corner) {
		t.Errorf("Expected alpha to fall off outward, got center=%d mid=%d corner=%d", center, mid, corner)
	}
	if corner != 0 {
		t.Errorf("Expected transparent corner, got %d", corner)
	}

	// Premultiplied: color never exceeds alpha
	for i := 0; i < len(pix); i += 4 {
		if pix[i] > pix[i+3] {
			t.Fatalf("Expected premultiplied pixel at %d, got rgb=%d a=%d", i/4, pix[i], pix[i+3])
		}
	}
}

// TestVignette verifies the overlay is clear in the middle and darker at corners
func TestVignette(t *testing.T) {
	const w, h = 64, 36
	pix := VignettePixels(w, h, 0.1, 0.5)

	center := pix[((h/2)*w+w/2)*4+3]
	corner := pix[3]

	if center != 0 {
		t.Errorf("Expected clear center, got alpha %d", center)
	}
	if corner <= center {
		t.Errorf("Expected darker corner, got %d vs center %d", corner, center)
	}
}
