// Package player drives animation playback over a motion controller,
// advancing a clock at a configurable speed and sampling one pose per frame.
package player

import (
	"time"

	"go.uber.org/zap"

	"github.com/tanadel/keymotion/internal/logger"
	"github.com/tanadel/keymotion/pkg/math"
	"github.com/tanadel/keymotion/pkg/motion"
)

const (
	// DefaultSpeed is the playback rate in animation seconds per wall second.
	DefaultSpeed float32 = 0.5

	// DefaultFPS is the sampling rate used when none is configured.
	DefaultFPS = 60
)

// Options configures a Player.
type Options struct {
	UseQuaternions bool
	UseBSpline     bool
	Speed          float32 // animation seconds per wall second, <=0 means DefaultSpeed
	Loop           bool    // wrap to the start when the clock passes the last keyframe
}

// Stats accumulates playback counters across Step and Run calls.
type Stats struct {
	Frames    int
	Cycles    int
	EvalTotal time.Duration
	EvalMax   time.Duration
}

// Player owns the playback clock and the interpolation mode flags.
type Player struct {
	ctrl           *motion.Controller
	time           float32
	useQuaternions bool
	useBSpline     bool
	speed          float32
	loop           bool
	stats          Stats
}

// New creates a player over the given controller.
func New(ctrl *motion.Controller, opts Options) *Player {
	speed := opts.Speed
	if speed <= 0 {
		speed = DefaultSpeed
	}

	return &Player{
		ctrl:           ctrl,
		useQuaternions: opts.UseQuaternions,
		useBSpline:     opts.UseBSpline,
		speed:          speed,
		loop:           opts.Loop,
	}
}

// Time returns the current playback clock in animation seconds.
func (p *Player) Time() float32 {
	return p.time
}

// UseQuaternions reports whether rotations blend through quaternions.
func (p *Player) UseQuaternions() bool {
	return p.useQuaternions
}

// UseBSpline reports whether positions follow the B-spline basis.
func (p *Player) UseBSpline() bool {
	return p.useBSpline
}

// Stats returns the counters accumulated so far.
func (p *Player) Stats() Stats {
	return p.stats
}

// Advance moves the playback clock by dt wall seconds, scaled by the
// playback speed. When the clock passes the last keyframe it wraps to
// zero if looping, otherwise it clamps there.
func (p *Player) Advance(dt float32) {
	p.time += dt * p.speed

	total := p.ctrl.TotalTime()
	if p.time > total {
		if p.loop {
			p.time = 0
			p.stats.Cycles++
		} else {
			p.time = total
		}
	}
}

// Sample evaluates the pose at the current clock.
func (p *Player) Sample() math.Mat4 {
	return p.ctrl.Transform(p.time, p.useQuaternions, p.useBSpline)
}

// Step advances the clock and samples the pose, recording evaluation timings.
func (p *Player) Step(dt float32) math.Mat4 {
	p.Advance(dt)

	start := time.Now()
	m := p.Sample()
	elapsed := time.Since(start)

	p.stats.Frames++
	p.stats.EvalTotal += elapsed
	if elapsed > p.stats.EvalMax {
		p.stats.EvalMax = elapsed
	}

	return m
}

// ToggleOrientation flips between quaternion and Euler rotation blending
// and returns the new state. The controller memoizes by time alone, so the
// cached pose must be dropped when the mode changes.
func (p *Player) ToggleOrientation() bool {
	p.useQuaternions = !p.useQuaternions
	p.ctrl.InvalidateCache()
	return p.useQuaternions
}

// ToggleCurve flips between Catmull-Rom and B-spline position blending
// and returns the new state.
func (p *Player) ToggleCurve() bool {
	p.useBSpline = !p.useBSpline
	p.ctrl.InvalidateCache()
	return p.useBSpline
}

// Reset rewinds the playback clock to zero.
func (p *Player) Reset() {
	p.time = 0
}

// RunConfig configures a Run call.
type RunConfig struct {
	FPS      int
	Duration time.Duration // wall-clock limit, 0 means stop after one cycle
	SlowEval time.Duration // warn when a single evaluation exceeds this, 0 disables
}

// Run samples poses at a fixed rate until the configured duration elapses,
// or, with no duration, until one full cycle of the animation completes.
// It returns the accumulated playback stats.
func (p *Player) Run(rc RunConfig) Stats {
	fps := rc.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	logger.Info("starting playback",
		zap.Int("keyframes", p.ctrl.KeyFrameCount()),
		zap.Float32("total", p.ctrl.TotalTime()),
		zap.Int("fps", fps),
		zap.Float32("speed", p.speed),
		zap.Bool("loop", p.loop),
	)

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	start := time.Now()
	lastTime := start
	startCycles := p.stats.Cycles

	frameCount := 0
	statsTimer := start
	lastEvalTotal := p.stats.EvalTotal

	for now := range ticker.C {
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		evalBefore := p.stats.EvalTotal
		p.Step(dt)
		evalDelta := p.stats.EvalTotal - evalBefore

		if rc.SlowEval > 0 && evalDelta > rc.SlowEval {
			logger.Warn("slow pose evaluation",
				zap.Duration("took", evalDelta),
				zap.Float32("time", p.time),
			)
		}

		frameCount++
		if now.Sub(statsTimer) >= time.Second {
			secEval := p.stats.EvalTotal - lastEvalTotal
			avg := time.Duration(0)
			if frameCount > 0 {
				avg = secEval / time.Duration(frameCount)
			}
			logger.Debug("playback stats",
				zap.Int("fps", frameCount),
				zap.Float32("clock", p.time),
				zap.Duration("avg_eval", avg),
				zap.Duration("max_eval", p.stats.EvalMax),
			)
			frameCount = 0
			statsTimer = now
			lastEvalTotal = p.stats.EvalTotal
		}

		if rc.Duration > 0 {
			if now.Sub(start) >= rc.Duration {
				break
			}
		} else if p.loop {
			if p.stats.Cycles > startCycles {
				break
			}
		} else if p.time >= p.ctrl.TotalTime() {
			break
		}
	}

	return p.stats
}
