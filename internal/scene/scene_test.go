package scene

import (
	"math"
	"testing"

	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/field"
	"github.com/iburimskiy/particle-ring/internal/motion"
)

var identity = motion.Frame{Scale: 1}

// TestProjectOrigin verifies the ring center lands on the screen center
func TestProjectOrigin(t *testing.T) {
	cam := NewCamera(1280, 720, 14)
	x, y, depth, ok := cam.View(identity).Project(field.Vec3{})

	if !ok {
		t.Fatal("Expected origin to be visible")
	}
	if math.Abs(x-640) > 1e-9 || math.Abs(y-360) > 1e-9 {
		t.Errorf("Expected (640, 360), got (%f, %f)", x, y)
	}
	expectedDepth := math.Hypot(6, 14)
	if math.Abs(depth-expectedDepth) > 1e-9 {
		t.Errorf("Expected depth %f, got %f", expectedDepth, depth)
	}
}

// TestRingSpreadsAtMinimumZoom verifies a zero or negative zoom still
// projects the ring to distinct screen points
func TestRingSpreadsAtMinimumZoom(t *testing.T) {
	ring := []field.Vec3{{X: 4.5}, {X: -4.5}, {Z: 4.5}, {Z: -4.5}}

	for _, zoom := range []float64{0, -3, math.NaN()} {
		p := config.Default()
		p.CameraZoom = zoom
		s := p.Sanitize()

		for _, cam := range []Camera{
			NewCamera(1280, 720, s.CameraZoom),
			NewCamera(1280, 720, zoom),
		} {
			pr := cam.View(identity)
			var xs, ys []float64
			for _, pt := range ring {
				x, y, _, ok := pr.Project(pt)
				if !ok {
					t.Fatalf("zoom %v: expected %+v to be visible", zoom, pt)
				}
				xs = append(xs, x)
				ys = append(ys, y)
			}
			for i := range ring {
				for j := i + 1; j < len(ring); j++ {
					if math.Hypot(xs[i]-xs[j], ys[i]-ys[j]) < 1 {
						t.Errorf("zoom %v: expected %+v and %+v apart, both at (%.2f, %.2f)",
							zoom, ring[i], ring[j], xs[i], ys[i])
					}
				}
			}
		}
	}
}

// TestProjectOrientation verifies screen axes
func TestProjectOrientation(t *testing.T) {
	pr := NewCamera(1280, 720, 14).View(identity)

	xr, _, _, _ := pr.Project(field.Vec3{X: 1})
	if xr <= 640 {
		t.Errorf("Expected +X to the right of center, got x=%f", xr)
	}

	// Near side of the ring sits lower on screen with the camera above
	_, yn, dn, _ := pr.Project(field.Vec3{Z: 4})
	_, yf, df, _ := pr.Project(field.Vec3{Z: -4})
	if yn <= yf {
		t.Errorf("Expected near point below far point, got near=%f far=%f", yn, yf)
	}
	if dn >= df {
		t.Errorf("Expected near point shallower, got near=%f far=%f", dn, df)
	}
}

// TestProjectBehindCamera verifies culling behind the near plane
func TestProjectBehindCamera(t *testing.T) {
	pr := NewCamera(1280, 720, 14).View(identity)
	if _, _, _, ok := pr.Project(field.Vec3{Y: 12, Z: 28}); ok {
		t.Error("Expected point behind camera to be culled")
	}
}

// TestModelScale verifies the breathing scale is applied
func TestModelScale(t *testing.T) {
	m := Model(motion.Frame{Scale: 2})
	v := m.apply(field.Vec3{X: 1, Y: 2, Z: 3})
	if v != (field.Vec3{X: 2, Y: 4, Z: 6}) {
		t.Errorf("Expected doubled vector, got %+v", v)
	}
}

// TestModelRotationY verifies the vortex rotation direction
func TestModelRotationY(t *testing.T) {
	m := Model(motion.Frame{Scale: 1, RotationY: math.Pi / 2})
	v := m.apply(field.Vec3{X: 1})
	if math.Abs(v.X) > 1e-12 || math.Abs(v.Z+1) > 1e-12 {
		t.Errorf("Expected (0,0,-1), got %+v", v)
	}
}

// TestPointSize verifies size attenuation with depth
func TestPointSize(t *testing.T) {
	pr := NewCamera(1280, 720, 14).View(identity)
	near := pr.PointSize(0.15, 5)
	far := pr.PointSize(0.15, 10)
	if math.Abs(near-2*far) > 1e-12 {
		t.Errorf("Expected size to halve with doubled depth, got %f and %f", near, far)
	}
	if pr.PointSize(0.15, 0) != 0 {
		t.Error("Expected zero size at zero depth")
	}
}

// TestDollyConverges verifies the eased distance settles on the target
func TestDollyConverges(t *testing.T) {
	d := NewDolly(14)
	if d.Distance() != 14 {
		t.Fatalf("Expected start at 14, got %f", d.Distance())
	}

	var pos float64
	for i := 0; i < 600; i++ {
		pos = d.Update(20)
	}
	if math.Abs(pos-20) > 1e-3 {
		t.Errorf("Expected dolly to settle at 20, got %f", pos)
	}
}
