package motion

import (
	gomath "math"
	"testing"

	"github.com/tanadel/keymotion/pkg/math"
)

func TestCatmullRomEndpoints(t *testing.T) {
	p0 := math.Vec3{X: 1, Y: 1, Z: 0}
	p1 := math.Vec3{X: 2, Y: 3, Z: 4}
	p2 := math.Vec3{X: 5, Y: -1, Z: 2}
	p3 := math.Vec3{X: 7, Y: 0, Z: 0}

	if got := catmullRom(p0, p1, p2, p3, 0); got != p1 {
		t.Errorf("catmullRom at t=0 = %v, want p1 %v", got, p1)
	}

	got := catmullRom(p0, p1, p2, p3, 1)
	if gomath.Abs(float64(got.X-p2.X)) > 1e-5 ||
		gomath.Abs(float64(got.Y-p2.Y)) > 1e-5 ||
		gomath.Abs(float64(got.Z-p2.Z)) > 1e-5 {
		t.Errorf("catmullRom at t=1 = %v, want p2 %v", got, p2)
	}
}

func TestCatmullRomClampedMidpoint(t *testing.T) {
	// Clamped two-keyframe shape: phantom ends duplicate the real ends, so
	// the midpoint is analytic.
	a := math.Vec3{X: 0, Y: 0, Z: 0}
	b := math.Vec3{X: 5, Y: 0, Z: 0}

	got := catmullRom(a, a, b, b, 0.5)
	want := math.Vec3{X: 2.5, Y: 0, Z: 0}
	if got != want {
		t.Errorf("catmullRom clamped midpoint = %v, want %v", got, want)
	}
}

func TestBSplinePartitionOfUnity(t *testing.T) {
	p := math.Vec3{X: 3, Y: -7, Z: 11}

	for _, tt := range []float32{0, 0.25, 0.5, 0.75, 1} {
		got := bspline(p, p, p, p, tt)
		if gomath.Abs(float64(got.X-p.X)) > 1e-5 ||
			gomath.Abs(float64(got.Y-p.Y)) > 1e-5 ||
			gomath.Abs(float64(got.Z-p.Z)) > 1e-5 {
			t.Errorf("bspline of equal points at t=%v = %v, want %v", tt, got, p)
		}
	}
}

func TestBSplineStartWeights(t *testing.T) {
	// At t=0 the basis weighs (p0 + 4*p1 + p2)/6 and ignores p3.
	p0 := math.Vec3{X: 6, Y: 0, Z: 0}
	p1 := math.Vec3{X: 0, Y: 6, Z: 0}
	p2 := math.Vec3{X: 0, Y: 0, Z: 6}
	p3 := math.Vec3{X: 99, Y: 99, Z: 99}

	got := bspline(p0, p1, p2, p3, 0)
	want := math.Vec3{X: 1, Y: 4, Z: 1}
	if gomath.Abs(float64(got.X-want.X)) > 1e-5 ||
		gomath.Abs(float64(got.Y-want.Y)) > 1e-5 ||
		gomath.Abs(float64(got.Z-want.Z)) > 1e-5 {
		t.Errorf("bspline at t=0 = %v, want %v", got, want)
	}
}

func TestClamp01(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{2, 1},
	}
	for _, tc := range cases {
		if got := clamp01(tc.in); got != tc.want {
			t.Errorf("clamp01(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
