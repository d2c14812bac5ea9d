// Package motion evaluates smooth rigid-body motion over timestamped
// keyframes. A Controller owns the keyframe sequence and answers transform
// queries by blending positions and orientations along Catmull-Rom or
// uniform cubic B-spline curves, with either quaternion slerp or per-axis
// Euler-angle interpolation for the rotation.
package motion

import (
	"github.com/tanadel/keymotion/pkg/math"
)

const (
	// timeEpsilon is the query-time tolerance below which the memoized
	// transform is reused.
	timeEpsilon = 1e-4

	// noTime marks the transform memo as empty.
	noTime = -1
)

// Controller owns an ordered keyframe sequence and evaluates the blended
// transform at arbitrary query times. Queries update cached derived state
// (segment data, locator hint, last transform), so a Controller must not be
// shared between goroutines without external serialization; use one per
// goroutine, or hold a mutex across both mutation and query calls.
type Controller struct {
	keyframes []Keyframe

	segments      []segment
	segmentsValid bool

	lastSegment int // locator hint
	lastTime    float32
	cached      math.Mat4
}

// NewController returns an empty controller.
func NewController() *Controller {
	return &Controller{lastTime: noTime}
}

// Add appends a keyframe. Times must be non-decreasing across successive
// calls; this is not validated.
func (c *Controller) Add(kf Keyframe) {
	c.keyframes = append(c.keyframes, kf)
	c.invalidate()
}

// AddAll appends keyframes in order with a single invalidation.
func (c *Controller) AddAll(kfs []Keyframe) {
	c.keyframes = append(c.keyframes, kfs...)
	c.invalidate()
}

// Clear removes all keyframes and derived state.
func (c *Controller) Clear() {
	c.keyframes = nil
	c.segments = nil
	c.segmentsValid = false
	c.lastSegment = 0
	c.lastTime = noTime
}

// invalidate stales the derived segment data and the transform memo after a
// store mutation.
func (c *Controller) invalidate() {
	c.segmentsValid = false
	c.lastSegment = 0
	c.lastTime = noTime
}

// InvalidateCache drops the memoized transform so the next query
// recomputes. The memo is keyed by time alone, so callers toggling mode
// flags at a fixed query time invalidate first. Derived segment data is
// unaffected; only store mutations rebuild it.
func (c *Controller) InvalidateCache() {
	c.lastTime = noTime
}

// KeyFrameCount returns the number of stored keyframes.
func (c *Controller) KeyFrameCount() int {
	return len(c.keyframes)
}

// TotalTime returns the time of the last keyframe, or 0 when empty.
func (c *Controller) TotalTime() float32 {
	if len(c.keyframes) == 0 {
		return 0
	}
	return c.keyframes[len(c.keyframes)-1].Time
}

// Transform returns the interpolated rigid transform (translation composed
// with rotation) at the given time. useQuaternion selects slerp orientation
// over per-axis Euler splines; useBSpline selects the approximating basis
// over Catmull-Rom. With no keyframes it returns identity, with one the
// static pose of that keyframe, and at or beyond the last keyframe's time
// the exact last pose with no extrapolation.
func (c *Controller) Transform(time float32, useQuaternion, useBSpline bool) math.Mat4 {
	if len(c.keyframes) == 0 {
		return math.Identity()
	}

	if c.lastTime >= 0 {
		diff := time - c.lastTime
		if diff < 0 {
			diff = -diff
		}
		if diff < timeEpsilon {
			return c.cached
		}
	}

	if len(c.keyframes) == 1 {
		return c.memoize(time, staticPose(c.keyframes[0]))
	}

	if last := c.keyframes[len(c.keyframes)-1]; time >= last.Time {
		return c.memoize(time, staticPose(last))
	}

	c.rebuildSegments()

	s := &c.segments[c.findSegment(time)]

	var t float32
	if s.duration > 0 {
		t = clamp01((time - s.start) / s.duration)
	}

	var pos math.Vec3
	if useBSpline {
		pos = bspline(s.p0, s.p1, s.p2, s.p3, t)
	} else {
		pos = catmullRom(s.p0, s.p1, s.p2, s.p3, t)
	}

	var rot math.Mat4
	if useQuaternion {
		rot = s.q1.Slerp(s.q2, t).ToMat4()
	} else {
		var e math.Vec3
		if useBSpline {
			e = bspline(s.e0, s.e1, s.e2, s.e3, t)
		} else {
			e = catmullRom(s.e0, s.e1, s.e2, s.e3, t)
		}
		rot = math.RotateXYZ(math.Radians(e.X), math.Radians(e.Y), math.Radians(e.Z))
	}

	return c.memoize(time, math.Translate(pos.X, pos.Y, pos.Z).Mul(rot))
}

// findSegment maps a query time to the index of the segment whose
// [start, end] span contains it. The previously returned index is tried
// first, then its neighbors, then a binary search over all segments. Times
// outside the covered range clamp to the nearest boundary segment.
func (c *Controller) findSegment(time float32) int {
	if c.lastSegment >= 0 && c.lastSegment < len(c.segments) {
		if s := &c.segments[c.lastSegment]; time >= s.start && time <= s.end {
			return c.lastSegment
		}
		if next := c.lastSegment + 1; next < len(c.segments) {
			if s := &c.segments[next]; time >= s.start && time <= s.end {
				c.lastSegment = next
				return next
			}
		}
		if prev := c.lastSegment - 1; prev >= 0 {
			if s := &c.segments[prev]; time >= s.start && time <= s.end {
				c.lastSegment = prev
				return prev
			}
		}
	}

	lo, hi := 0, len(c.segments)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		s := &c.segments[mid]
		switch {
		case time < s.start:
			hi = mid - 1
		case time > s.end:
			lo = mid + 1
		default:
			c.lastSegment = mid
			return mid
		}
	}

	idx := 0
	if hi >= 0 {
		idx = min(hi, len(c.segments)-1)
	}
	c.lastSegment = idx
	return idx
}

func (c *Controller) memoize(time float32, m math.Mat4) math.Mat4 {
	c.lastTime = time
	c.cached = m
	return m
}

// staticPose is the non-interpolated transform of a single keyframe.
func staticPose(kf Keyframe) math.Mat4 {
	return math.Translate(kf.Position.X, kf.Position.Y, kf.Position.Z).
		Mul(kf.Rotation.ToMat4())
}
