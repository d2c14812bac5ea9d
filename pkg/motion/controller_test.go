package motion

import (
	gomath "math"
	"testing"

	"github.com/tanadel/keymotion/pkg/math"
)

func TestTransformEmptyIdentity(t *testing.T) {
	c := NewController()
	got := c.Transform(5, true, false)
	if got != math.Identity() {
		t.Errorf("Transform with no keyframes = %v, want identity", got)
	}
}

func TestTransformSingleKeyframeStatic(t *testing.T) {
	c := NewController()
	c.Add(NewKeyframe(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{X: 0, Y: 90, Z: 0}, 5))

	want := math.Translate(1, 2, 3).Mul(math.QuatFromEuler(0, math.Radians(90), 0).ToMat4())

	if got := c.Transform(0, false, false); got != want {
		t.Errorf("single keyframe at t=0: got %v, want static pose %v", got, want)
	}
	if got := c.Transform(100, true, true); got != want {
		t.Errorf("single keyframe at t=100: got %v, want static pose %v", got, want)
	}
}

func TestCatmullRomReproducesKeyframePositions(t *testing.T) {
	frames := DefaultKeyFrames()

	for _, useQuat := range []bool{false, true} {
		c := NewController()
		c.AddAll(frames)

		for i, kf := range frames {
			c.InvalidateCache()
			m := c.Transform(kf.Time, useQuat, false)

			if gomath.Abs(float64(m[12]-kf.Position.X)) > 1e-3 ||
				gomath.Abs(float64(m[13]-kf.Position.Y)) > 1e-3 ||
				gomath.Abs(float64(m[14]-kf.Position.Z)) > 1e-3 {
				t.Errorf("useQuat=%v keyframe %d: position (%v, %v, %v), want %v",
					useQuat, i, m[12], m[13], m[14], kf.Position)
			}
		}
	}
}

func TestTransformIdempotent(t *testing.T) {
	c := NewController()
	c.AddAll(DefaultKeyFrames())

	first := c.Transform(3.3, false, false)
	second := c.Transform(3.3, false, false)
	if first != second {
		t.Error("repeat query at an identical time should return a bit-identical matrix")
	}
}

func TestTransformMemoIgnoresFlags(t *testing.T) {
	c := NewController()
	c.AddAll(DefaultKeyFrames())

	euler := c.Transform(1, false, false)
	memoized := c.Transform(1, true, false)
	if euler != memoized {
		t.Error("repeat query at the same time should hit the memo regardless of mode flags")
	}

	c.InvalidateCache()
	quat := c.Transform(1, true, false)
	if quat == euler {
		t.Error("quaternion and Euler blending should differ mid-segment after invalidation")
	}
}

func TestTransformBeyondEndExactPose(t *testing.T) {
	frames := DefaultKeyFrames()
	c := NewController()
	c.AddAll(frames)

	last := frames[len(frames)-1]
	want := staticPose(last)

	for _, tc := range []struct {
		name    string
		useQuat bool
		useB    bool
	}{
		{"quat crspline", true, false},
		{"quat bspline", true, true},
		{"euler crspline", false, false},
		{"euler bspline", false, true},
	} {
		c.InvalidateCache()
		if got := c.Transform(100, tc.useQuat, tc.useB); got != want {
			t.Errorf("%s beyond end: got %v, want last pose %v", tc.name, got, want)
		}

		// Exactly at the final time as well, with no basis offset.
		c.InvalidateCache()
		if got := c.Transform(last.Time, tc.useQuat, tc.useB); got != want {
			t.Errorf("%s at final time: got %v, want last pose %v", tc.name, got, want)
		}
	}
}

func TestTransformMidpointTwoKeyframes(t *testing.T) {
	frames, errs := ParseKeyFrames("0,0,0:0,0,0;5,0,0:0,90,0", 2)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if len(frames) != 2 {
		t.Fatalf("parsed %d keyframes, want 2", len(frames))
	}

	c := NewController()
	c.AddAll(frames)

	m := c.Transform(1, false, false)

	// With two keyframes the clamped boundary makes p0=p1 and p3=p2, so the
	// curve midpoint is the analytic midpoint, not merely between the ends.
	if m[12] != 2.5 || m[13] != 0 || m[14] != 0 {
		t.Errorf("midpoint position = (%v, %v, %v), want (2.5, 0, 0)", m[12], m[13], m[14])
	}

	// The Euler spline halves the single-axis rotation: 45 degrees about Y.
	want := math.RotateXYZ(0, math.Radians(45), 0)
	for _, i := range []int{0, 1, 2, 4, 5, 6, 8, 9, 10} {
		if gomath.Abs(float64(m[i]-want[i])) > 1e-5 {
			t.Errorf("midpoint rotation element %d: got %v, want %v", i, m[i], want[i])
		}
	}
}

func TestTransformZeroDurationSegment(t *testing.T) {
	c := NewController()
	c.Add(NewKeyframe(math.Vec3{X: 1, Y: 2, Z: 3}, math.Vec3{}, 5))
	c.Add(NewKeyframe(math.Vec3{X: 9, Y: 9, Z: 9}, math.Vec3{}, 5))

	m := c.Transform(4, false, false)
	if m[12] != 1 || m[13] != 2 || m[14] != 3 {
		t.Errorf("zero-duration segment: position (%v, %v, %v), want (1, 2, 3)", m[12], m[13], m[14])
	}
	for i, v := range m {
		if gomath.IsNaN(float64(v)) {
			t.Fatalf("zero-duration segment produced NaN at element %d", i)
		}
	}
}

func TestMutationInvalidates(t *testing.T) {
	c := NewController()
	c.AddAll([]Keyframe{
		NewKeyframe(math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{}, 0),
		NewKeyframe(math.Vec3{X: 4, Y: 0, Z: 0}, math.Vec3{}, 2),
	})

	before := c.Transform(1, true, false)

	c.Add(NewKeyframe(math.Vec3{X: 0, Y: 10, Z: 0}, math.Vec3{}, 4))
	after := c.Transform(1, true, false)

	if before == after {
		t.Error("adding a keyframe should change the interpolated curve at the same time")
	}

	c.Clear()
	if c.KeyFrameCount() != 0 {
		t.Errorf("KeyFrameCount after Clear = %d, want 0", c.KeyFrameCount())
	}
	if got := c.Transform(1, true, false); got != math.Identity() {
		t.Errorf("Transform after Clear = %v, want identity", got)
	}
}

func TestTotalTime(t *testing.T) {
	c := NewController()
	if c.TotalTime() != 0 {
		t.Errorf("TotalTime empty = %v, want 0", c.TotalTime())
	}

	c.AddAll(DefaultKeyFrames())
	if c.TotalTime() != 10 {
		t.Errorf("TotalTime = %v, want 10", c.TotalTime())
	}
	if c.KeyFrameCount() != 6 {
		t.Errorf("KeyFrameCount = %d, want 6", c.KeyFrameCount())
	}
}

func TestFindSegment(t *testing.T) {
	c := NewController()
	c.AddAll(DefaultKeyFrames())
	c.rebuildSegments()

	// Segments cover [0,2], [2,4], [4,6], [6,8], [8,10].
	cases := []struct {
		time float32
		want int
	}{
		{0, 0},
		{0.1, 0},
		{3, 1},
		{7.5, 3},
		{9.99, 4},
		{-5, 0}, // before the first segment clamps to it
		{50, 4}, // past the last segment clamps to it
	}
	for _, tc := range cases {
		if got := c.findSegment(tc.time); got != tc.want {
			t.Errorf("findSegment(%v) = %d, want %d", tc.time, got, tc.want)
		}
	}

	// The hint makes a repeat lookup stable.
	if got := c.findSegment(7.5); got != 3 {
		t.Errorf("findSegment(7.5) after hint = %d, want 3", got)
	}
	if c.lastSegment != 3 {
		t.Errorf("locator hint = %d, want 3", c.lastSegment)
	}
}

func TestFindSegmentMonotonicSteps(t *testing.T) {
	c := NewController()
	c.AddAll(DefaultKeyFrames())
	c.rebuildSegments()

	// Steps smaller than any segment duration move the index by at most 1.
	prev := c.findSegment(0)
	for time := float32(0.5); time < 10; time += 0.5 {
		idx := c.findSegment(time)
		if idx < prev || idx > prev+1 {
			t.Fatalf("findSegment(%v) jumped from %d to %d", time, prev, idx)
		}
		prev = idx
	}
}
