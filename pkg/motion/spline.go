package motion

import (
	"github.com/tanadel/keymotion/pkg/math"
)

// catmullRom evaluates the interpolating cubic for control points p0..p3 at
// t in [0, 1]. The curve passes through p1 at t=0 and p2 at t=1.
func catmullRom(p0, p1, p2, p3 math.Vec3, t float32) math.Vec3 {
	t2 := t * t
	t3 := t2 * t

	a := p1.Scale(2)
	b := p2.Sub(p0)
	c := p0.Scale(2).Sub(p1.Scale(5)).Add(p2.Scale(4)).Sub(p3)
	d := p1.Scale(3).Sub(p0).Sub(p2.Scale(3)).Add(p3)

	return a.Add(b.Scale(t)).Add(c.Scale(t2)).Add(d.Scale(t3)).Scale(0.5)
}

// bspline evaluates the uniform cubic B-spline basis for control points
// p0..p3 at t in [0, 1]. The curve approximates the control points without
// passing through them.
func bspline(p0, p1, p2, p3 math.Vec3, t float32) math.Vec3 {
	t2 := t * t
	t3 := t2 * t

	b0 := (-t3 + 3*t2 - 3*t + 1) / 6
	b1 := (3*t3 - 6*t2 + 4) / 6
	b2 := (-3*t3 + 3*t2 + 3*t + 1) / 6
	b3 := t3 / 6

	return p0.Scale(b0).Add(p1.Scale(b1)).Add(p2.Scale(b2)).Add(p3.Scale(b3))
}

func clamp01(t float32) float32 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
