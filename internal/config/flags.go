package config

import "flag"

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagKeyframes     = flag.String("kf", "", "Inline keyframe string (x,y,z:e1,e2,e3;...)")
	flagKeyframesFile = flag.String("kf-file", "", "Path to a keyframe string file")
	flagOrientation   = flag.String("orientation", "", "Rotation mode: quat|quaternion|0 or euler|1")
	flagInterpolation = flag.String("interpolation", "", "Curve basis: crspline|catmullrom|0 or bspline|1")
	flagSpeed         = flag.Float64("speed", 0, "Playback speed, animation seconds per wall second")
	flagDuration      = flag.Float64("duration", 0, "Wall-clock seconds to play, 0 for one full cycle")
	flagStats         = flag.Bool("stats", false, "Enable evaluation statistics and slow-eval warnings")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Stats.Enabled = true
	}
	if *flagKeyframes != "" {
		cfg.Animation.Keyframes = *flagKeyframes
	}
	if *flagKeyframesFile != "" {
		cfg.Animation.KeyframesFile = *flagKeyframesFile
	}
	if *flagOrientation != "" {
		cfg.Animation.Orientation = *flagOrientation
	}
	if *flagInterpolation != "" {
		cfg.Animation.Interpolation = *flagInterpolation
	}
	if *flagSpeed > 0 {
		cfg.Playback.Speed = float32(*flagSpeed)
	}
	if *flagDuration > 0 {
		cfg.Playback.Duration = float32(*flagDuration)
	}
	if *flagStats {
		cfg.Stats.Enabled = true
	}
}
