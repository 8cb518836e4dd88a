package pinball

import "github.com/vovakirdan/pinball-madness/internal/core"

// Mode is the board's current game mode. Exactly one is active at a time;
// the gravity flip is an overlay tracked separately.
type Mode int

const (
	ModeCountdown Mode = iota
	ModeNormal
	ModeRotaChallenge
	ModeFistCombat
	ModeBossFight
)

var modeNames = map[Mode]string{
	ModeCountdown:     "countdown",
	ModeNormal:        "normal",
	ModeRotaChallenge: "rota",
	ModeFistCombat:    "fist",
	ModeBossFight:     "boss",
}

// String returns the mode name.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return "unknown"
}

// freezesTimer reports whether the survival timer is paused in this mode.
func (m Mode) freezesTimer() bool {
	return m == ModeCountdown || m == ModeRotaChallenge || m == ModeFistCombat
}

// Powers records which item kinds were collected this round.
type Powers struct {
	Duplicate bool
	Fist      bool
	Rota      bool
	Boss      bool
}

// All reports whether every tracked power was collected.
func (p Powers) All() bool {
	return p.Duplicate && p.Fist && p.Rota && p.Boss
}

// TimerBand classifies the survival timer for display.
type TimerBand int

const (
	BandNormal TimerBand = iota
	BandWarning
	BandCritical
)

// RotaState tracks the check-target challenge.
type RotaState struct {
	Collected int
	Target    int
}

// PistonState tracks one piston during fist combat.
type PistonState struct {
	Busy       bool // Cooling down after a shot
	Compressed bool // Visual compression right after firing
}

// SimulationState is everything the board mutates between ticks. Contact
// handlers, deferred actions and commands receive it explicitly.
type SimulationState struct {
	Tick           uint64
	Mode           Mode
	GravityFlipped bool
	Timer          float64 // Survival timer, seconds
	TimeSurvived   float64 // Simulated seconds since the round started
	Countdown      int     // Remaining countdown steps

	Powers       Powers
	FullyPowered bool

	LiveItem        ItemKind // Item body on the board, ItemNone when clear
	DuplicateActive bool
	BoostArmed      bool
	UndoAvailable   bool
	Rota            RotaState
	Pistons         [2]PistonState

	RoundOver bool
	Lost      bool

	Events []core.Event
}

func (s *SimulationState) emit(e core.Event) {
	s.Events = append(s.Events, e)
}

// drain returns and clears the pending events.
func (s *SimulationState) drain() []core.Event {
	ev := s.Events
	s.Events = nil
	return ev
}
