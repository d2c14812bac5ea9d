// Package config handles playback configuration loading and management.
package config

import (
	"fmt"
	"time"
)

// Config holds all playback settings.
type Config struct {
	Animation AnimationConfig `yaml:"animation"`
	Playback  PlaybackConfig  `yaml:"playback"`
	Stats     StatsConfig     `yaml:"stats"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AnimationConfig holds the keyframe source and blending modes.
type AnimationConfig struct {
	// Orientation selects the rotation representation: "quat",
	// "quaternion" or "0" for quaternion slerp, "euler" or "1" for
	// per-axis Euler splines.
	Orientation string `yaml:"orientation"`
	// Interpolation selects the curve basis: "crspline", "catmullrom" or
	// "0" for Catmull-Rom, "bspline" or "1" for uniform cubic B-spline.
	Interpolation string `yaml:"interpolation"`
	// Keyframes is an inline keyframe string ("x,y,z:e1,e2,e3;...").
	Keyframes string `yaml:"keyframes"`
	// KeyframesFile points to a file holding a keyframe string; the
	// inline string wins when both are set.
	KeyframesFile string `yaml:"keyframes_file"`
	// TimeStep is the time spacing between parsed keyframes in seconds.
	TimeStep float32 `yaml:"time_step"`
}

// PlaybackConfig holds playback clock settings.
type PlaybackConfig struct {
	Speed    float32 `yaml:"speed"`    // animation seconds per wall second
	Loop     bool    `yaml:"loop"`     // wrap at the end instead of stopping
	FPS      int     `yaml:"fps"`      // sampling rate of the playback loop
	Duration float32 `yaml:"duration"` // wall seconds to play, 0 = one cycle
}

// StatsConfig holds evaluation statistics settings.
type StatsConfig struct {
	Enabled bool `yaml:"enabled"`
	// SlowEvalMicros warns when a single transform evaluation exceeds this
	// many microseconds. Kept as an integer because yaml does not decode
	// duration strings.
	SlowEvalMicros int `yaml:"slow_eval_us"`
}

// SlowEval returns the slow-evaluation warning threshold.
func (s StatsConfig) SlowEval() time.Duration {
	return time.Duration(s.SlowEvalMicros) * time.Microsecond
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// UseQuaternions reports whether the configured orientation mode selects
// quaternion blending, or an error for an unrecognized value.
func (a AnimationConfig) UseQuaternions() (bool, error) {
	switch a.Orientation {
	case "quat", "quaternion", "0":
		return true, nil
	case "euler", "1":
		return false, nil
	}
	return false, fmt.Errorf("invalid orientation type: %q", a.Orientation)
}

// UseBSpline reports whether the configured interpolation mode selects the
// B-spline basis, or an error for an unrecognized value.
func (a AnimationConfig) UseBSpline() (bool, error) {
	switch a.Interpolation {
	case "crspline", "catmullrom", "0":
		return false, nil
	case "bspline", "1":
		return true, nil
	}
	return false, fmt.Errorf("invalid interpolation type: %q", a.Interpolation)
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Animation: AnimationConfig{
			Orientation:   "quat",
			Interpolation: "crspline",
			TimeStep:      2.0,
		},
		Playback: PlaybackConfig{
			Speed:    0.5,
			Loop:     true,
			FPS:      60,
			Duration: 0,
		},
		Stats: StatsConfig{
			Enabled:        true,
			SlowEvalMicros: 50,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
