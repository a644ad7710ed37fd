// Package scene projects the particle field into screen space for the live
// preview: a perspective camera above the ring plane looking at its center.
package scene

import (
	"math"

	"github.com/iburimskiy/particle-ring/internal/config"
	"github.com/iburimskiy/particle-ring/internal/field"
	"github.com/iburimskiy/particle-ring/internal/motion"
)

type mat3 [3][3]float64

func (m mat3) mul(n mat3) mat3 {
	var r mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return r
}

func (m mat3) apply(v field.Vec3) field.Vec3 {
	return field.Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func rotX(a float64) mat3 {
	s, c := math.Sincos(a)
	return mat3{{1, 0, 0}, {0, c, -s}, {0, s, c}}
}

func rotY(a float64) mat3 {
	s, c := math.Sincos(a)
	return mat3{{c, 0, s}, {0, 1, 0}, {-s, 0, c}}
}

func rotZ(a float64) mat3 {
	s, c := math.Sincos(a)
	return mat3{{c, -s, 0}, {s, c, 0}, {0, 0, 1}}
}

// Model returns the field's model matrix for f: scale, then Euler XYZ
// rotation (Z applied first).
func Model(f motion.Frame) mat3 {
	s := mat3{{f.Scale, 0, 0}, {0, f.Scale, 0}, {0, 0, f.Scale}}
	return rotX(f.RotationX).mul(rotY(f.RotationY)).mul(rotZ(f.RotationZ)).mul(s)
}

// Camera is a perspective camera at (0, Height, Distance) aimed at the origin.
type Camera struct {
	Width, Height int
	Distance      float64
	Elevation     float64
	FOV           float64 // vertical, degrees
}

// NewCamera returns the preview camera for a viewport.
func NewCamera(width, height int, distance float64) Camera {
	// The look-at basis degenerates with the eye straight above the origin.
	if !(distance >= config.MinCameraZoom) {
		distance = config.MinCameraZoom
	}
	return Camera{
		Width:     width,
		Height:    height,
		Distance:  distance,
		Elevation: config.CameraHeight,
		FOV:       config.CameraFOV,
	}
}

// Projector maps model-space points to screen pixels for one frame.
type Projector struct {
	m      mat3
	offset field.Vec3
	focal  float64
	cx, cy float64
	half   float64
}

// View combines the camera with a frame transform.
func (c Camera) View(f motion.Frame) Projector {
	eye := field.Vec3{Y: c.Elevation, Z: c.Distance}

	fwd := normalize(field.Vec3{X: -eye.X, Y: -eye.Y, Z: -eye.Z})
	right := normalize(cross(fwd, field.Vec3{Y: 1}))
	up := cross(right, fwd)

	basis := mat3{
		{right.X, right.Y, right.Z},
		{up.X, up.Y, up.Z},
		{fwd.X, fwd.Y, fwd.Z},
	}

	half := float64(c.Height) / 2
	return Projector{
		m:      basis.mul(Model(f)),
		offset: basis.apply(eye),
		focal:  half / math.Tan(c.FOV*math.Pi/360),
		cx:     float64(c.Width) / 2,
		cy:     half,
		half:   half,
	}
}

// Project returns the screen position and view depth of p. ok is false for
// points at or behind the near plane.
func (pr Projector) Project(p field.Vec3) (x, y, depth float64, ok bool) {
	v := pr.m.apply(p)
	vx, vy, vz := v.X-pr.offset.X, v.Y-pr.offset.Y, v.Z-pr.offset.Z
	if vz <= config.CameraNear {
		return 0, 0, vz, false
	}
	return pr.cx + vx*pr.focal/vz, pr.cy - vy*pr.focal/vz, vz, true
}

// PointSize returns the attenuated sprite size in pixels for a particle of
// world size at depth.
func (pr Projector) PointSize(size, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return size * pr.half / depth
}

func cross(a, b field.Vec3) field.Vec3 {
	return field.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

func normalize(v field.Vec3) field.Vec3 {
	l := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if l == 0 {
		return v
	}
	return field.Vec3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}
