package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pinball-madness/internal/config"
	"github.com/vovakirdan/pinball-madness/internal/core"
	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
	"github.com/vovakirdan/pinball-madness/internal/progress"
	"github.com/vovakirdan/pinball-madness/internal/settings"
)

// MenuChoice is what the player picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceStats
	ChoiceQuit
)

type menuEntry int

const (
	entryPlay menuEntry = iota
	entrySkin
	entryDifficulty
	entryStats
	entryQuit
)

var menuEntries = []menuEntry{entryPlay, entrySkin, entryDifficulty, entryStats, entryQuit}

var difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor    int
	width     int
	height    int
	settings  *settings.Manager
	tracker   *progress.Tracker
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	choice    MenuChoice
}

// NewMenuModel creates a new menu model. prefs and tracker may be nil.
func NewMenuModel(prefs *settings.Manager, tracker *progress.Tracker, cfg core.RuntimeConfig) MenuModel {
	if prefs == nil {
		prefs, _ = settings.NewManager(nil)
	}
	if tracker == nil {
		tracker, _ = progress.NewTracker(nil, nil)
	}
	return MenuModel{
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		settings:  prefs,
		tracker:   tracker,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.choice = ChoiceQuit
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.cycle(-1)

	case MenuActionRight:
		m.cycle(1)

	case MenuActionStats:
		m.choice = ChoiceStats
		return m, tea.Quit

	case MenuActionSelect:
		switch menuEntries[m.cursor] {
		case entryPlay:
			m.choice = ChoicePlay
			return m, tea.Quit
		case entryStats:
			m.choice = ChoiceStats
			return m, tea.Quit
		case entryQuit:
			m.choice = ChoiceQuit
			return m, tea.Quit
		default:
			m.cycle(1)
		}
	}

	return m, nil
}

// cycle steps the skin or difficulty under the cursor and persists it.
func (m *MenuModel) cycle(dir int) {
	switch menuEntries[m.cursor] {
	case entrySkin:
		skins := m.tracker.AvailableSkins()
		i := skinIndex(skins, m.settings.Get().BallSkin)
		m.settings.SetBallSkin(skins[wrap(i+dir, len(skins))].ID)
	case entryDifficulty:
		i := 0
		for j, d := range difficulties {
			if string(d) == m.settings.Get().Difficulty {
				i = j
			}
		}
		m.settings.SetDifficulty(string(difficulties[wrap(i+dir, len(difficulties))]))
	default:
		return
	}
	//nolint:errcheck // Best-effort save, the choice still applies this session
	m.settings.Save()
}

func skinIndex(skins []pinball.Skin, id string) int {
	for i, s := range skins {
		if s.ID == id {
			return i
		}
	}
	return 0
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.choice != ChoiceNone {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	activeStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("P I N B A L L   M A D N E S S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Achievements %d/%d", m.tracker.Count(), len(progress.All)), m.width))
	b.WriteString("\n\n")

	for i, e := range menuEntries {
		line := "  " + m.label(e)
		if i == m.cursor {
			line = activeStyle.Render("> " + m.label(e))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Change  |  Enter: Select  |  Tab: Stats  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) label(e menuEntry) string {
	switch e {
	case entryPlay:
		return "Play"
	case entrySkin:
		s := pinball.SkinByID(m.settings.Get().BallSkin)
		return fmt.Sprintf("Ball: < %c %s >", s.Glyph, s.Name)
	case entryDifficulty:
		return fmt.Sprintf("Difficulty: < %s >", m.settings.Get().Difficulty)
	case entryStats:
		return "Stats & Achievements"
	default:
		return "Quit"
	}
}

// Choice returns what the player picked, or ChoiceNone.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, ignoring ANSI styling.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Choice MenuChoice
	Config core.RuntimeConfig
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(prefs *settings.Manager, tracker *progress.Tracker, cfg core.RuntimeConfig) (MenuResult, error) {
	model := NewMenuModel(prefs, tracker, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok || m.Choice() == ChoiceNone {
		return MenuResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	return MenuResult{Choice: m.Choice(), Config: m.Config()}, nil
}
