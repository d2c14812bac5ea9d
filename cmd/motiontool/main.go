// motiontool is a CLI utility for inspecting and sampling keyframe paths.
package main

import (
	"flag"
	"fmt"
	"io"
	gomath "math"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hako/durafmt"

	"github.com/tanadel/keymotion/internal/config"
	"github.com/tanadel/keymotion/pkg/math"
	"github.com/tanadel/keymotion/pkg/motion"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "sample":
		cmdSample(args)
	case "info":
		cmdInfo(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`motiontool - keyframe path inspection utility

Usage:
  motiontool <command> [options]

Commands:
  sample [options]   Sample the interpolated path as CSV
  info [options]     Show keyframe path information
  config [path]      Write a default config file
  help               Show this help

Examples:
  motiontool sample -kf "0,0,0:0,0,0;5,0,0:0,90,0" -rate 10
  motiontool sample -kf-file path.txt -matrix -o path.csv
  motiontool info -kf-file path.txt
  motiontool config ./config.yaml`)
}

func cmdSample(args []string) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	kf := fs.String("kf", "", "Inline keyframe string (x,y,z:e1,e2,e3;...)")
	kfFile := fs.String("kf-file", "", "Path to a keyframe string file")
	step := fs.Float64("step", float64(motion.DefaultTimeStep), "Seconds between consecutive keyframes")
	rate := fs.Float64("rate", 30, "Samples per animation second")
	start := fs.Float64("start", 0, "Start time in animation seconds")
	end := fs.Float64("end", -1, "End time in animation seconds (-1 = full path)")
	orientation := fs.String("orientation", "quat", "Rotation mode: quat|quaternion|0 or euler|1")
	interpolation := fs.String("interpolation", "crspline", "Curve basis: crspline|catmullrom|0 or bspline|1")
	out := fs.String("o", "", "Output file (default stdout)")
	matrix := fs.Bool("matrix", false, "Emit all 16 matrix cells instead of position only")
	fs.Parse(args)

	if *rate <= 0 {
		fmt.Fprintln(os.Stderr, "Error: rate must be positive")
		os.Exit(1)
	}

	anim := config.AnimationConfig{Orientation: *orientation, Interpolation: *interpolation}
	useQuat, err := anim.UseQuaternions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	useBSpline, err := anim.UseBSpline()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctrl := motion.NewController()
	ctrl.AddAll(loadFrames(*kf, *kfFile, float32(*step)))

	startT := float32(*start)
	endT := float32(*end)
	if endT < 0 {
		endT = ctrl.TotalTime()
	}
	if endT < startT {
		fmt.Fprintln(os.Stderr, "Error: end time before start time")
		os.Exit(1)
	}

	w := io.Writer(os.Stdout)
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}
	cw := &countWriter{w: w}

	if *matrix {
		fmt.Fprintln(cw, "time,m0,m1,m2,m3,m4,m5,m6,m7,m8,m9,m10,m11,m12,m13,m14,m15")
	} else {
		fmt.Fprintln(cw, "time,x,y,z")
	}

	// The last sample lands exactly on the end time.
	dt := float32(1.0 / *rate)
	steps := int(gomath.Ceil(float64(endT-startT) * *rate))
	count := 0
	for i := 0; i <= steps; i++ {
		t := startT + float32(i)*dt
		if t > endT {
			t = endT
		}

		m := ctrl.Transform(t, useQuat, useBSpline)
		if *matrix {
			fmt.Fprintf(cw, "%g", t)
			for _, cell := range m {
				fmt.Fprintf(cw, ",%g", cell)
			}
			fmt.Fprintln(cw)
		} else {
			fmt.Fprintf(cw, "%g,%g,%g,%g\n", t, m[12], m[13], m[14])
		}
		count++
	}

	summary := fmt.Sprintf("%s samples (%s)", humanize.Comma(int64(count)), humanize.Bytes(uint64(cw.n)))
	if *out != "" {
		fmt.Printf("Wrote %s: %s\n", *out, summary)
	} else {
		fmt.Fprintf(os.Stderr, "\n%s\n", summary)
	}
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	kf := fs.String("kf", "", "Inline keyframe string (x,y,z:e1,e2,e3;...)")
	kfFile := fs.String("kf-file", "", "Path to a keyframe string file")
	step := fs.Float64("step", float64(motion.DefaultTimeStep), "Seconds between consecutive keyframes")
	fs.Parse(args)

	frames := loadFrames(*kf, *kfFile, float32(*step))

	total := float32(0)
	if len(frames) > 0 {
		total = frames[len(frames)-1].Time
	}

	fmt.Printf("Keyframes: %d\n", len(frames))
	fmt.Printf("Duration:  %s\n", durafmt.Parse(time.Duration(total*float32(time.Second))))
	fmt.Println()
	fmt.Printf("  %-4s %-8s %-24s %s\n", "#", "time", "position", "rotation (deg)")
	for i, f := range frames {
		fmt.Printf("  %-4d %-8.2f %-24s %s\n", i, f.Time, fmtVec(f.Position), fmtVec(f.Euler))
	}
}

func cmdConfig(args []string) {
	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	cfg := config.Default()
	if err := cfg.SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote default config to %s\n", path)
}

// loadFrames resolves keyframes from an inline string or a file, falling
// back to the built-in demo path. Malformed records are reported and skipped.
func loadFrames(inline, file string, step float32) []motion.Keyframe {
	text := inline
	if text == "" && file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		text = string(data)
	}

	if text == "" {
		return motion.DefaultKeyFrames()
	}

	frames, errs := motion.ParseKeyFrames(text, step)
	for _, e := range errs {
		fmt.Fprintf(os.Stderr, "Skipping record %d (%q): %v\n", e.Index, e.Record, e.Err)
	}
	if len(frames) == 0 {
		fmt.Fprintln(os.Stderr, "No usable keyframes, using built-in path")
		return motion.DefaultKeyFrames()
	}

	return frames
}

func fmtVec(v math.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

// countWriter counts bytes passing through to the underlying writer.
type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
