package diagram

import (
	"iter"
	"math"

	"github.com/alexiusacademia/gowall/internal/rating"
	"github.com/alexiusacademia/gowall/internal/wall"
)

// Vec3 is a point in wall space (m). X runs along the width, Y away from
// the base toward the climber, Z up.
type Vec3 struct {
	X, Y, Z float64
}

// RotateX rotates the vector around the X axis
func (v Vec3) RotateX(angle float64) Vec3 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Vec3{X: v.X, Y: v.Y*cos - v.Z*sin, Z: v.Y*sin + v.Z*cos}
}

// RotateZ rotates the vector around the Z axis
func (v Vec3) RotateZ(angle float64) Vec3 {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Vec3{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos, Z: v.Z}
}

// Frame holds the 3D vertices of the panel and its supporting members.
type Frame struct {
	Panel        [4]Vec3 // bottom left, bottom right, top right, top left
	LeftSupport  [3]Vec3 // foot, plumb point under the top, top
	RightSupport [3]Vec3
	Base         [4]Vec3 // front left, front right, back right, back left
}

// Frame3D builds the frame geometry for a wall spec.
func Frame3D(s wall.Spec) Frame {
	theta := s.AngleDegrees() * math.Pi / 180
	h, w := s.Height(), s.Width()
	run, rise := h*math.Cos(theta), h*math.Sin(theta)

	return Frame{
		Panel: [4]Vec3{
			{0, 0, 0},
			{w, 0, 0},
			{w, run, rise},
			{0, run, rise},
		},
		LeftSupport: [3]Vec3{
			{0, 0, 0},
			{0, run, 0},
			{0, run, rise},
		},
		RightSupport: [3]Vec3{
			{w, 0, 0},
			{w, run, 0},
			{w, run, rise},
		},
		Base: [4]Vec3{
			{0, 0, 0},
			{w, 0, 0},
			{w, run, 0},
			{0, run, 0},
		},
	}
}

// Isometric view angles
var (
	isoYaw   = math.Pi / 4
	isoPitch = math.Atan(1 / math.Sqrt2)
)

// Project maps a 3D point onto the page using an isometric view.
// The returned coordinates are (horizontal, vertical).
func Project(v Vec3) (float64, float64) {
	// Page space: x right, y into the page, z up. Yaw about Z, then tilt
	// about X so the floor plane is visible.
	p := v.RotateZ(isoYaw).RotateX(isoPitch)
	return p.X, p.Z
}

// Steps yields start, start+step, ... while the value is below stop,
// each rounded to 2 decimals. The sequence can be ranged over repeatedly.
func Steps(start, stop, step float64) iter.Seq[float64] {
	return func(yield func(float64) bool) {
		if step <= 0 {
			return
		}
		for i := 0; ; i++ {
			v := start + float64(i)*step
			if v >= stop {
				return
			}
			if !yield(rating.RoundTo(v, 2)) {
				return
			}
		}
	}
}
