package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
	"github.com/vovakirdan/pinball-madness/internal/progress"
	"github.com/vovakirdan/pinball-madness/internal/storage"
)

// toastSeconds is how long an achievement banner stays on screen.
const toastSeconds = 3

// Model is the Bubble Tea model for a pinball round.
type Model struct {
	game       *pinball.Game
	screen     *core.Screen
	store      *storage.Store
	tracker    *progress.Tracker
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	keyMapper  *KeyMapper
	gameState  core.GameState
	toast      string
	toastTicks int
	gen        uint64 // Tick generation of this model
	quitting   bool
	backToMenu bool
	embedded   bool // Back returns to the menu instead of quitting
	runSaved   bool // Whether the finished run has been recorded
}

// NewModel creates a model for game. store and tracker may be nil.
func NewModel(game *pinball.Game, store *storage.Store, tracker *progress.Tracker, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if tracker == nil {
		tracker, _ = progress.NewTracker(nil, nil)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		tracker:    tracker,
		logger:     log.New(io.Discard),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		gen:        nextTickGen(),
	}
}

// WithLogger returns a copy of m that logs run results to l.
func (m Model) WithLogger(l *log.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.gen)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The board view scales to the screen, so the round keeps going.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Gen != m.gen {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.recordRun(storage.OutcomeQuit)
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.recordRun(storage.OutcomeQuit)
		if m.embedded {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.runSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.gen)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	survived := m.game.Session().Board().State().TimeSurvived
	unlocked, err := m.tracker.Observe(result.Events, survived)
	if err != nil {
		m.logger.Warn("could not record progress", "error", err)
	}
	m.announce(unlocked)

	if m.gameState.GameOver {
		outcome := storage.OutcomeBallLost
		if m.game.Session().Board().State().Timer <= 0 {
			outcome = storage.OutcomeTimeUp
		}
		m.recordRun(outcome)
	}

	if m.toastTicks > 0 {
		m.toastTicks--
	}
	return m, tickCmd(m.config.TickRate, m.gen)
}

// announce shows newly unlocked achievements.
func (m *Model) announce(list []progress.Achievement) {
	if len(list) == 0 {
		return
	}
	titles := make([]string, len(list))
	for i, a := range list {
		titles[i] = a.Title
	}
	m.toast = "Achievement unlocked: " + strings.Join(titles, ", ")
	m.toastTicks = toastSeconds * max(1, m.config.TickRate)
}

// recordRun saves the current round once. Rounds that never left the
// countdown are not recorded.
func (m *Model) recordRun(outcome string) {
	if m.runSaved || m.game.Session() == nil {
		return
	}
	s := m.game.Session()
	survived := s.Board().State().TimeSurvived
	if survived <= 0 {
		return
	}
	m.runSaved = true

	unlocked, err := m.tracker.EndRun(survived)
	if err != nil {
		m.logger.Warn("could not record progress", "error", err)
	}
	m.announce(unlocked)

	if m.store == nil {
		return
	}
	run := storage.Run{
		Survived: survived,
		BossWins: s.BossWins(),
		Outcome:  outcome,
		Skin:     s.Skin(),
		Seed:     m.game.Seed(),
	}
	if _, err := m.store.SaveRun(run); err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.logger.Info("run saved", "survived", survived, "outcome", outcome, "boss_wins", run.BossWins)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".pinball", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.toastTicks > 0 {
		drawToast(m.screen, m.toast)
	}
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a single round in its own Bubble Tea program.
func Run(game *pinball.Game, store *storage.Store, tracker *progress.Tracker, cfg core.RuntimeConfig) error {
	model := NewModel(game, store, tracker, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
