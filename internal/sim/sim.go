// Package sim runs pinball rounds without a terminal. Input comes from a
// script instead of the keyboard, and every tick can be traced.
package sim

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
)

// Script names an input strategy.
type Script string

const (
	ScriptIdle Script = "idle" // Never touches the controls
	ScriptAuto Script = "auto" // Flips when the ball falls toward a flipper
)

// ParseScript converts a CLI string to a script.
func ParseScript(s string) (Script, error) {
	switch Script(s) {
	case ScriptIdle, ScriptAuto:
		return Script(s), nil
	case "":
		return ScriptAuto, nil
	default:
		return "", fmt.Errorf("sim: unknown script %q (want auto or idle)", s)
	}
}

// Options configures a headless run.
type Options struct {
	Ticks    int // Upper bound on simulated ticks
	Seed     int64
	TickRate int // 0 keeps the configured rate
	Script   Script
	Skin     string
	Preset   string
	Logger   *log.Logger
	Trace    io.Writer // msgpack frames are written here when set
	Every    int       // Trace every Nth tick; ticks with events are always traced
}

// Result summarizes a headless run.
type Result struct {
	Ticks    int
	Survived float64
	BossWins int
	Over     bool
	Events   map[core.EventKind]int
	Frames   int    // Trace frames written
	Hash     uint64 // Snapshot hash of the last tick
}

// ErrNoTicks is returned when a run is asked for zero ticks.
var ErrNoTicks = errors.New("sim: tick count must be positive")

// Run plays one round until it ends or the tick budget runs out.
func Run(opts Options) (Result, error) {
	if opts.Ticks <= 0 {
		return Result{}, ErrNoTicks
	}
	if opts.Script == "" {
		opts.Script = ScriptAuto
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game := pinball.NewWithLogger(logger)
	game.SetSkin(opts.Skin)
	game.SetPreset(opts.Preset)
	game.Reset(core.RuntimeConfig{TickRate: opts.TickRate, Seed: opts.Seed})
	if err := game.ConfigError(); err != nil {
		logger.Warn("using default config", "error", err)
	}

	var tw *TraceWriter
	if opts.Trace != nil {
		tw = NewTraceWriter(opts.Trace)
	}
	every := max(1, opts.Every)

	res := Result{Events: make(map[core.EventKind]int)}
	driver := newDriver(opts.Script)
	s := game.Session()
	for res.Ticks < opts.Ticks && !s.Over() {
		step := game.Step(driver.frame(s))
		res.Ticks++
		for _, e := range step.Events {
			res.Events[e.Kind]++
			logger.Info(e.Kind.String(), "tick", res.Ticks, "active", e.Active, "mode", s.Mode())
		}
		if tw != nil && (len(step.Events) > 0 || res.Ticks%every == 0) {
			if err := tw.Write(Frame{Tick: res.Ticks, Events: step.Events, Snapshot: s.Snapshot()}); err != nil {
				return res, err
			}
		}
	}

	snap := s.Snapshot()
	res.Survived = snap.TimeSurvived
	res.BossWins = s.BossWins()
	res.Over = s.Over()
	res.Hash = snap.Hash()
	if tw != nil {
		res.Frames = tw.Count()
	}
	logger.Debug("run finished", "ticks", res.Ticks, "survived", res.Survived, "over", res.Over)
	return res, nil
}
