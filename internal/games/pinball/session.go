package pinball

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/physics"
)

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used by the session and everything it builds.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithManualBoss leaves EnterBossFight to the caller instead of starting the
// fight as soon as the boss item is collected.
func WithManualBoss() Option {
	return func(s *Session) {
		s.autoBoss = false
	}
}

// Session runs one round: the board, and a boss fight whenever one is
// active. While the fight runs the board is suspended.
type Session struct {
	cfg      config.PinballConfig
	seed     int64
	log      *log.Logger
	autoBoss bool

	board  *Board
	boss   *BossFight
	fights int
	wins   int
	skin   string
	paused bool
}

// NewSession creates a session and starts its first round.
func NewSession(cfg config.PinballConfig, seed int64, opts ...Option) *Session {
	s := &Session{
		cfg:      cfg,
		seed:     seed,
		log:      discardLogger(),
		autoBoss: true,
		skin:     cfg.BallSkin,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.StartRound(cfg)
	return s
}

// StartRound discards any running round and builds a fresh board from cfg.
// Later rounds and boss fights use cfg as well.
func (s *Session) StartRound(cfg config.PinballConfig) {
	if cfg.BallSkin != s.cfg.BallSkin && cfg.BallSkin != "" {
		s.skin = cfg.BallSkin
	}
	s.cfg = cfg
	s.board = NewBoard(s.cfg, s.seed, s.log)
	s.boss = nil
	s.fights = 0
	s.wins = 0
	s.paused = false
	s.log.Debug("round started", "seed", s.seed, "timer", s.cfg.Round.InitialTimer)
}

// Step advances whichever playfield is active by one tick. A paused session
// does nothing.
func (s *Session) Step() []core.Event {
	if s.paused {
		return nil
	}
	if s.boss != nil {
		events := s.boss.Step()
		if o := s.boss.State().Outcome; o != OutcomePending {
			s.ExitBossFight(o)
		}
		return events
	}

	events := s.board.Step()
	if s.autoBoss && slices.ContainsFunc(events, func(e core.Event) bool {
		return e.Kind == core.EventBossEncounterRequested
	}) {
		s.EnterBossFight(s.skin, s.board.state.DuplicateActive)
	}
	return events
}

// EnterBossFight suspends the board and starts a boss fight. Returns false
// if a fight is already running or the round is over.
func (s *Session) EnterBossFight(skin string, withDuplicate bool) bool {
	if s.boss != nil || s.board.state.RoundOver {
		return false
	}
	if skin != "" {
		s.skin = skin
	}
	s.fights++
	s.board.enterBoss()
	s.boss = NewBossFight(s.cfg, s.seed+int64(s.board.state.Tick), withDuplicate, s.log)
	s.log.Info("boss fight started", "fight", s.fights, "duplicate", withDuplicate)
	return true
}

// ExitBossFight ends the running fight with the given outcome and resumes
// the board. OutcomePending keeps whatever the fight decided; leaving an
// undecided fight that way counts as a defeat.
func (s *Session) ExitBossFight(outcome Outcome) {
	if s.boss == nil {
		return
	}
	res := s.boss.Result()
	if outcome != OutcomePending {
		res.Outcome = outcome
	}
	s.log.Debug("boss fight left", "fight", s.fights, "outcome", res.Outcome)
	if res.Outcome == OutcomeVictory {
		s.wins++
	}
	s.boss = nil
	s.board.resumeFromBoss(res)
}

// PressFlipper raises a flipper on the active playfield.
func (s *Session) PressFlipper(side Side) {
	if s.boss != nil {
		s.boss.PressFlipper(side)
		return
	}
	s.board.PressFlipper(side)
}

// ReleaseFlipper drops a flipper on the active playfield.
func (s *Session) ReleaseFlipper(side Side) {
	if s.boss != nil {
		s.boss.ReleaseFlipper(side)
		return
	}
	s.board.ReleaseFlipper(side)
}

// TapBall fires the jump boost.
func (s *Session) TapBall() bool {
	if s.boss != nil || s.paused {
		return false
	}
	return s.board.TapBall()
}

// TapPiston fires a piston during fist combat.
func (s *Session) TapPiston(side Side) bool {
	if s.boss != nil || s.paused {
		return false
	}
	return s.board.TapPiston(side)
}

// TapUndoButton spends the undo reward.
func (s *Session) TapUndoButton() bool {
	if s.boss != nil || s.paused {
		return false
	}
	return s.board.TapUndoButton()
}

// SetBallSkin selects the ball skin shown from now on.
func (s *Session) SetBallSkin(id string) {
	s.skin = id
}

// Pause stops the simulation until Resume.
func (s *Session) Pause() {
	s.paused = true
}

// Resume continues a paused simulation.
func (s *Session) Resume() {
	s.paused = false
}

// Paused reports whether the session is paused.
func (s *Session) Paused() bool {
	return s.paused
}

// Mode returns the board's mode; ModeBossFight while a fight runs.
func (s *Session) Mode() Mode {
	return s.board.state.Mode
}

// Board returns the main playfield.
func (s *Session) Board() *Board {
	return s.board
}

// Boss returns the running boss fight, or nil.
func (s *Session) Boss() *BossFight {
	return s.boss
}

// ActiveBall returns the primary ball of whichever playfield is running.
func (s *Session) ActiveBall() *physics.Body {
	if s.boss != nil {
		return s.boss.ball()
	}
	return s.board.ball()
}

// Skin returns the selected ball skin.
func (s *Session) Skin() string {
	return s.skin
}

// BossWins returns the number of boss fights won this round.
func (s *Session) BossWins() int {
	return s.wins
}

// Over reports whether the round has ended.
func (s *Session) Over() bool {
	return s.board.state.RoundOver
}
