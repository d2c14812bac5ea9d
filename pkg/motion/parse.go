package motion

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tanadel/keymotion/pkg/math"
)

// DefaultTimeStep is the time spacing assigned to consecutive keyframe
// records when no explicit step is configured.
const DefaultTimeStep float32 = 2.0

// ErrMissingSeparator reports a keyframe record without the ':' between
// position and Euler angles.
var ErrMissingSeparator = errors.New("missing ':' separator")

// RecordError describes a keyframe record that could not be parsed. The
// record is skipped and parsing continues.
type RecordError struct {
	Index  int    // zero-based record position in the input
	Record string // raw record text
	Err    error
}

func (e RecordError) Error() string {
	return fmt.Sprintf("keyframe record %d %q: %v", e.Index, e.Record, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

// ParseKeyFrames reads the compact keyframe text format: semicolon-separated
// records of "x,y,z:e1,e2,e3" (position, then Euler angles in degrees).
// Times are assigned 0, timeStep, 2*timeStep, ... in record order; skipped
// records do not advance the clock. Empty records are ignored, malformed
// ones are reported and skipped, never fatal. A timeStep <= 0 falls back to
// DefaultTimeStep. Callers receiving no keyframes from a nonempty input are
// expected to fall back to DefaultKeyFrames.
func ParseKeyFrames(s string, timeStep float32) ([]Keyframe, []RecordError) {
	if timeStep <= 0 {
		timeStep = DefaultTimeStep
	}

	var (
		frames []Keyframe
		bad    []RecordError
		time   float32
	)

	for i, record := range strings.Split(s, ";") {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		posPart, eulerPart, found := strings.Cut(record, ":")
		if !found {
			bad = append(bad, RecordError{Index: i, Record: record, Err: ErrMissingSeparator})
			continue
		}

		pos, err := parseVec3(posPart)
		if err != nil {
			bad = append(bad, RecordError{Index: i, Record: record, Err: fmt.Errorf("position: %w", err)})
			continue
		}

		euler, err := parseVec3(eulerPart)
		if err != nil {
			bad = append(bad, RecordError{Index: i, Record: record, Err: fmt.Errorf("angles: %w", err)})
			continue
		}

		frames = append(frames, NewKeyframe(pos, euler, time))
		time += timeStep
	}

	return frames, bad
}

// parseVec3 reads up to three comma-separated float components; missing
// components stay 0, extra ones are ignored.
func parseVec3(s string) (math.Vec3, error) {
	var v math.Vec3
	out := [3]*float32{&v.X, &v.Y, &v.Z}

	for i, part := range strings.Split(s, ",") {
		if i >= len(out) {
			break
		}
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, err := strconv.ParseFloat(part, 32)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("component %d: %w", i+1, err)
		}
		*out[i] = float32(f)
	}

	return v, nil
}

// DefaultKeyFrames is the built-in animation used when no usable keyframes
// are supplied: a six-pose loop leaving and returning to the origin with
// two full turns around Y.
func DefaultKeyFrames() []Keyframe {
	return []Keyframe{
		NewKeyframe(math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 0, Y: 0, Z: 0}, 0),
		NewKeyframe(math.Vec3{X: 3, Y: 2, Z: 0}, math.Vec3{X: 45, Y: 90, Z: 0}, 2),
		NewKeyframe(math.Vec3{X: 0, Y: 4, Z: 3}, math.Vec3{X: 90, Y: 180, Z: 45}, 4),
		NewKeyframe(math.Vec3{X: -3, Y: 2, Z: 0}, math.Vec3{X: 135, Y: 270, Z: 90}, 6),
		NewKeyframe(math.Vec3{X: 0, Y: 0, Z: -3}, math.Vec3{X: 180, Y: 360, Z: 135}, 8),
		NewKeyframe(math.Vec3{X: 0, Y: 0, Z: 0}, math.Vec3{X: 360, Y: 720, Z: 360}, 10),
	}
}
