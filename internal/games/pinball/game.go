package pinball

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/core"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// holdSeconds is how long a flipper stays up after its key was last seen.
// Terminals report key repeats but never key releases.
const holdSeconds = 0.25

// Game adapts a Session to the terminal platform: it maps input frames to
// session commands and reports score and game over.
type Game struct {
	session *Session
	cfg     config.PinballConfig
	runtime core.RuntimeConfig
	logger  *log.Logger
	hold    [2]int // Ticks left before each flipper releases
	err     error  // Config load error from the last Reset

	skin   string                  // Replaces the configured ball skin when set
	preset config.DifficultyPreset // Applied on top of the loaded config
}

// New creates a pinball game instance.
func New() *Game {
	return &Game{}
}

// NewWithLogger creates a game whose session logs to l.
func NewWithLogger(l *log.Logger) *Game {
	return &Game{logger: l}
}

// SetSkin overrides the configured ball skin. A running round switches
// right away.
func (g *Game) SetSkin(id string) {
	g.skin = id
	if g.session != nil && id != "" {
		g.session.SetBallSkin(id)
	}
}

// SetPreset overrides the difficulty preset from the next Reset on.
func (g *Game) SetPreset(preset string) {
	g.preset = config.ParsePreset(preset)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "pinball"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Pinball Madness"
}

// Reset loads the configuration and starts a new round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadPinball(configPath)
	g.err = err
	if err != nil {
		cfg = config.DefaultPinballConfig()
	}
	if g.preset != "" {
		config.ApplyPinballPreset(&cfg, g.preset)
	}
	if g.skin != "" {
		cfg.BallSkin = g.skin
	}
	if runtime.TickRate > 0 {
		cfg.Round.TickRate = runtime.TickRate
	}
	g.cfg = cfg
	g.hold = [2]int{}

	opts := []Option{}
	if g.logger != nil {
		opts = append(opts, WithLogger(g.logger))
	}
	g.session = NewSession(cfg, runtime.Seed, opts...)
}

// ConfigError returns the error hit while loading the config on the last
// Reset, if defaults had to be used.
func (g *Game) ConfigError() error {
	return g.err
}

// Step maps one input frame to session commands and advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session
	if in.Has(core.ActionRestart) && s.Over() {
		g.Reset(g.runtime)
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) && !s.Over() {
		if s.Paused() {
			s.Resume()
		} else {
			s.Pause()
		}
	}
	if s.Paused() {
		return core.StepResult{State: g.State()}
	}

	g.flipperInput(in, SideLeft, core.ActionFlipLeft, core.ActionPistonLeft)
	g.flipperInput(in, SideRight, core.ActionFlipRight, core.ActionPistonRight)
	if in.Has(core.ActionTapBall) {
		s.TapBall()
	}
	if in.Has(core.ActionUndo) {
		s.TapUndoButton()
	}

	events := s.Step()
	return core.StepResult{State: g.State(), Events: events}
}

// flipperInput presses a flipper (or fires the piston during fist combat)
// and releases it once the key stops repeating.
func (g *Game) flipperInput(in core.InputFrame, side Side, flip, piston core.Action) {
	s := g.session
	if s.Mode() == ModeFistCombat {
		if in.Has(flip) || in.Has(piston) {
			s.TapPiston(side)
		}
		g.hold[side] = 0
		return
	}
	if in.Has(flip) {
		if g.hold[side] == 0 {
			s.PressFlipper(side)
		}
		g.hold[side] = max(1, int(holdSeconds*float64(g.cfg.Round.TickRate)))
		return
	}
	if g.hold[side] > 0 {
		g.hold[side]--
		if g.hold[side] == 0 {
			s.ReleaseFlipper(side)
		}
	}
}

// Render draws the current frame.
func (g *Game) Render(dst *core.Screen) {
	g.session.Render(dst)
}

// State reports whole seconds survived as the score.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    int(g.session.board.state.TimeSurvived),
		GameOver: g.session.Over(),
		Paused:   g.session.Paused(),
	}
}

// Seed returns the seed of the running round.
func (g *Game) Seed() int64 {
	return g.runtime.Seed
}

// Session exposes the running session.
func (g *Game) Session() *Session {
	return g.session
}
