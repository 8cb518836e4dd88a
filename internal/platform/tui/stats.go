package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pinball-madness/internal/games/pinball"
	"github.com/vovakirdan/pinball-madness/internal/progress"
	"github.com/vovakirdan/pinball-madness/internal/storage"
)

const maxRuns = 100 // Max runs to load

type statsTab int

const (
	tabRuns statsTab = iota
	tabAchievements
)

var tabTitles = []string{"Best Runs", "Achievements"}

// StatsKeyMap defines the key bindings for the stats screen.
type StatsKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k StatsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextTab, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k StatsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextTab, k.PrevTab},
		{k.Back, k.Quit},
	}
}

// DefaultStatsKeyMap returns default key bindings.
func DefaultStatsKeyMap() StatsKeyMap {
	return StatsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev tab"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// StatsModel shows recorded runs and achievement progress.
type StatsModel struct {
	store     *storage.Store
	tracker   *progress.Tracker
	tab       statsTab
	runs      []storage.Run
	stats     *storage.Stats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      StatsKeyMap
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewStatsModel creates a stats screen. store and tracker may be nil.
func NewStatsModel(store *storage.Store, tracker *progress.Tracker, width, height int) StatsModel {
	if tracker == nil {
		tracker, _ = progress.NewTracker(nil, nil)
	}
	h := help.New()
	h.ShowAll = false

	m := StatsModel{
		store:   store,
		tracker: tracker,
		keys:    DefaultStatsKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
	m.load()
	m.rebuild()
	return m
}

func (m *StatsModel) load() {
	if m.store == nil {
		return
	}
	if m.runs, m.loadErr = m.store.TopRuns(maxRuns); m.loadErr != nil {
		return
	}
	m.stats, m.loadErr = m.store.GetStats()
}

// rebuild recreates the table for the active tab.
func (m *StatsModel) rebuild() {
	var columns []table.Column
	var rows []table.Row

	switch m.tab {
	case tabRuns:
		dateWidth := max(12, min(20, m.width-56))
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Survived", Width: 10},
			{Title: "Bosses", Width: 7},
			{Title: "Outcome", Width: 10},
			{Title: "Ball", Width: 8},
			{Title: "Date", Width: dateWidth},
		}
		for i, r := range m.runs {
			rows = append(rows, table.Row{
				fmt.Sprintf("#%d", i+1),
				pinball.FormatTimer(r.Survived, 60),
				fmt.Sprintf("%d", r.BossWins),
				strings.ReplaceAll(r.Outcome, "_", " "),
				pinball.SkinByID(r.Skin).Name,
				r.CreatedAt.Format("Jan 02 15:04"),
			})
		}
	case tabAchievements:
		columns = []table.Column{
			{Title: "", Width: 3},
			{Title: "Achievement", Width: 16},
			{Title: "Goal", Width: max(20, min(44, m.width-30))},
		}
		for _, a := range progress.All {
			mark := " "
			if m.tracker.Unlocked(a.ID) {
				mark = "✓"
			}
			rows = append(rows, table.Row{mark, a.Title, a.Description})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, tabs, help
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	m.table = t
}

// Init initializes the stats model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the stats screen.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextTab):
			m.tab = (m.tab + 1) % statsTab(len(tabTitles))
			m.rebuild()
			return m, nil

		case key.Matches(msg, m.keys.PrevTab):
			m.tab = (m.tab + statsTab(len(tabTitles)) - 1) % statsTab(len(tabTitles))
			m.rebuild()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the stats screen.
func (m StatsModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("STATS"), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(m.summary(), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, len(tabTitles))
	for i, title := range tabTitles {
		if statsTab(i) == m.tab {
			tabs[i] = activeTabStyle.Render(title)
		} else {
			tabs[i] = tabStyle.Render(title)
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n")

	b.WriteString(centerText(boxStyle.Render(m.content()), m.width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m StatsModel) summary() string {
	parts := []string{fmt.Sprintf("Achievements %d/%d", m.tracker.Count(), len(progress.All))}
	if m.stats != nil {
		parts = append(parts,
			fmt.Sprintf("Runs %d", m.stats.Runs),
			"Best "+pinball.FormatTimer(m.stats.Best, 60),
			"Played "+pinball.FormatTimer(m.stats.TotalPlay, 60),
			fmt.Sprintf("Bosses beaten %d", m.stats.BossWins),
		)
	}
	return strings.Join(parts, "  |  ")
}

func (m StatsModel) content() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.loadErr != nil:
		return emptyStyle.Render("Could not load stats:\n" + m.loadErr.Error())
	case m.tab == tabRuns && len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.\nPlay a round to set a record!")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m StatsModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m StatsModel) IsQuitting() bool {
	return m.quitting
}

// RunStats runs the stats screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunStats(store *storage.Store, tracker *progress.Tracker, width, height int) (goBack bool, err error) {
	model := NewStatsModel(store, tracker, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(StatsModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
