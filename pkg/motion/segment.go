package motion

import (
	"github.com/tanadel/keymotion/pkg/math"
)

// segment is the derived control data for the span between two consecutive
// keyframes. Position and Euler control points reach one keyframe beyond
// each end of the span; the Euler points are unwrapped so per-axis spline
// blending never takes the long way around a 360 degree wrap.
type segment struct {
	p0, p1, p2, p3 math.Vec3 // position control points
	e0, e1, e2, e3 math.Vec3 // Euler control points, degrees, unwrapped
	q1, q2         math.Quat // orientation endpoints
	start, end     float32
	duration       float32
}

// rebuildSegments derives control data for the N-1 spans between N
// keyframes. A no-op while the derived data is still valid or with fewer
// than two keyframes. Boundary spans reuse the first/last keyframe as the
// missing phantom control point.
func (c *Controller) rebuildSegments() {
	if c.segmentsValid || len(c.keyframes) < 2 {
		return
	}

	n := len(c.keyframes)
	c.segments = make([]segment, 0, n-1)

	for i := 0; i < n-1; i++ {
		k0 := c.keyframes[max(i-1, 0)]
		k1 := c.keyframes[i]
		k2 := c.keyframes[i+1]
		k3 := c.keyframes[min(i+2, n-1)]

		s := segment{
			p0: k0.Position,
			p1: k1.Position,
			p2: k2.Position,
			p3: k3.Position,
			e1: k1.Euler,
			q1: k1.Rotation,
			q2: k2.Rotation,

			start: k1.Time,
			end:   k2.Time,
		}
		s.duration = s.end - s.start

		s.e0 = unwrapAngles(k0.Euler, s.e1)
		s.e2 = unwrapAngles(k2.Euler, s.e1)
		s.e3 = unwrapAngles(k3.Euler, s.e2)

		c.segments = append(c.segments, s)
	}

	c.segmentsValid = true
}

// unwrapAngles shifts each component of v by whole turns until its signed
// difference from the matching component of ref lies in [-180, 180].
func unwrapAngles(v, ref math.Vec3) math.Vec3 {
	return math.Vec3{
		X: unwrapAngle(v.X, ref.X),
		Y: unwrapAngle(v.Y, ref.Y),
		Z: unwrapAngle(v.Z, ref.Z),
	}
}

func unwrapAngle(angle, ref float32) float32 {
	for angle-ref > 180 {
		angle -= 360
	}
	for angle-ref < -180 {
		angle += 360
	}
	return angle
}
