package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
	"github.com/vovakirdan/pinball-madness/internal/progress"
	"github.com/vovakirdan/pinball-madness/internal/settings"
	"github.com/vovakirdan/pinball-madness/internal/storage"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenStats
)

// SessionModel runs the whole flow in one program: menu -> round or stats
// -> menu. Used for SSH sessions and the local menu command.
type SessionModel struct {
	store    *storage.Store
	tracker  *progress.Tracker
	settings *settings.Manager
	logger   *log.Logger
	config   core.RuntimeConfig
	screen   screenKind
	menu     MenuModel
	game     Model
	stats    StatsModel
	quitting bool
}

// NewSessionModel creates a session starting at the main menu. Every
// argument except cfg may be nil.
func NewSessionModel(store *storage.Store, tracker *progress.Tracker, prefs *settings.Manager, cfg core.RuntimeConfig) SessionModel {
	if tracker == nil {
		tracker, _ = progress.NewTracker(nil, nil)
	}
	if prefs == nil {
		prefs, _ = settings.NewManager(nil)
	}
	return SessionModel{
		store:    store,
		tracker:  tracker,
		settings: prefs,
		logger:   log.New(io.Discard),
		config:   cfg,
		menu:     NewMenuModel(prefs, tracker, cfg),
	}
}

// WithLogger returns a copy of m whose rounds log to l.
func (m SessionModel) WithLogger(l *log.Logger) SessionModel {
	if l != nil {
		m.logger = l
	}
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenStats:
		return m.updateStats(msg)
	default:
		return m.updateMenu(msg)
	}
}

// Sub-models signal completion with tea.Quit. Inside a session that must
// not reach the program, so those commands are dropped on screen changes.

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		m.menu = menu
	}

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit
	case ChoicePlay:
		return m.startGame()
	case ChoiceStats:
		m.stats = NewStatsModel(m.store, m.tracker, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenStats
		return m, m.stats.Init()
	}
	return m, cmd
}

func (m SessionModel) startGame() (tea.Model, tea.Cmd) {
	prefs := m.settings.Get()
	game := pinball.NewWithLogger(m.logger)
	game.SetSkin(prefs.BallSkin)
	game.SetPreset(prefs.Difficulty)

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	m.game = NewModel(game, m.store, m.tracker, cfg).WithLogger(m.logger)
	m.game.embedded = true
	m.screen = screenGame
	m.logger.Info("round started", "skin", prefs.BallSkin, "difficulty", prefs.Difficulty)
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = game
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) updateStats(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.stats.Update(msg)
	if stats, ok := next.(StatsModel); ok {
		m.stats = stats
	}

	if m.stats.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.stats.IsGoingBack() {
		return m.backToMenu()
	}
	return m, cmd
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.menu = NewMenuModel(m.settings, m.tracker, m.config)
	m.screen = screenMenu
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenStats:
		return m.stats.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs the menu-driven flow locally.
func RunSession(store *storage.Store, tracker *progress.Tracker, prefs *settings.Manager, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewSessionModel(store, tracker, prefs, cfg).WithLogger(logger)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
