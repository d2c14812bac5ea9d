package motion

import (
	"github.com/tanadel/keymotion/pkg/math"
)

// Keyframe is a timestamped pose anchoring the animation curve. Euler holds
// the orientation in degrees and Rotation the equivalent unit quaternion;
// the two are kept consistent conversions of each other (rotation about X,
// then Y, then Z).
type Keyframe struct {
	Position math.Vec3
	Euler    math.Vec3 // degrees
	Rotation math.Quat
	Time     float32
}

// NewKeyframe builds a keyframe from a position and Euler angles in
// degrees, deriving the quaternion from the angles.
func NewKeyframe(position, eulerDeg math.Vec3, time float32) Keyframe {
	return Keyframe{
		Position: position,
		Euler:    eulerDeg,
		Rotation: math.QuatFromEuler(
			math.Radians(eulerDeg.X),
			math.Radians(eulerDeg.Y),
			math.Radians(eulerDeg.Z),
		),
		Time: time,
	}
}

// NewKeyframeQuat builds a keyframe from a position and a quaternion,
// deriving the Euler angles from the (normalized) quaternion.
func NewKeyframeQuat(position math.Vec3, rotation math.Quat, time float32) Keyframe {
	rotation = rotation.Normalize()
	e := rotation.ToEuler()
	return Keyframe{
		Position: position,
		Euler:    math.Vec3{X: math.Degrees(e.X), Y: math.Degrees(e.Y), Z: math.Degrees(e.Z)},
		Rotation: rotation,
		Time:     time,
	}
}
