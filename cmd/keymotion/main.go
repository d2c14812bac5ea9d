// Package main is the entry point for the keymotion playback tool.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/hako/durafmt"
	"go.uber.org/zap"

	"github.com/tanadel/keymotion/internal/config"
	"github.com/tanadel/keymotion/internal/logger"
	"github.com/tanadel/keymotion/internal/player"
	"github.com/tanadel/keymotion/pkg/motion"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== KeyMotion ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	useQuat, err := cfg.Animation.UseQuaternions()
	if err != nil {
		logger.Error("invalid orientation setting", zap.Error(err))
		os.Exit(1)
	}
	useBSpline, err := cfg.Animation.UseBSpline()
	if err != nil {
		logger.Error("invalid interpolation setting", zap.Error(err))
		os.Exit(1)
	}

	frames, err := loadKeyFrames(cfg)
	if err != nil {
		logger.Error("failed to load keyframes", zap.Error(err))
		os.Exit(1)
	}

	ctrl := motion.NewController()
	ctrl.AddAll(frames)

	p := player.New(ctrl, player.Options{
		UseQuaternions: useQuat,
		UseBSpline:     useBSpline,
		Speed:          cfg.Playback.Speed,
		Loop:           cfg.Playback.Loop,
	})

	rc := player.RunConfig{
		FPS:      cfg.Playback.FPS,
		Duration: time.Duration(cfg.Playback.Duration * float32(time.Second)),
	}
	if cfg.Stats.Enabled {
		rc.SlowEval = cfg.Stats.SlowEval()
	}

	start := time.Now()
	stats := p.Run(rc)
	elapsed := durafmt.Parse(time.Since(start).Round(time.Millisecond))

	logger.Info("playback finished",
		zap.String("elapsed", elapsed.String()),
		zap.Int("frames", stats.Frames),
		zap.Int("cycles", stats.Cycles),
	)
}

// loadKeyFrames resolves the animation keyframes from the configured
// sources: an inline string first, then a keyframe file, then the
// built-in demo path.
func loadKeyFrames(cfg *config.Config) ([]motion.Keyframe, error) {
	text := cfg.Animation.Keyframes
	if text == "" && cfg.Animation.KeyframesFile != "" {
		data, err := os.ReadFile(cfg.Animation.KeyframesFile)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", cfg.Animation.KeyframesFile, err)
		}
		text = string(data)
	}

	if text == "" {
		logger.Debug("no keyframes configured, using built-in path")
		return motion.DefaultKeyFrames(), nil
	}

	frames, errs := motion.ParseKeyFrames(text, cfg.Animation.TimeStep)
	for _, e := range errs {
		logger.Warn("skipping keyframe record",
			zap.Int("index", e.Index),
			zap.String("record", e.Record),
			zap.Error(e.Err),
		)
	}
	if len(frames) == 0 {
		logger.Warn("no usable keyframes parsed, using built-in path")
		return motion.DefaultKeyFrames(), nil
	}

	return frames, nil
}
