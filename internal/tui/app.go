// internal/tui/app.go
//
// Spectator TUI for shxl. It uses bubbletea, which follows The Elm
// Architecture:
//
// 1. Model: the table being watched and the menu
// 2. Update: advances the game or the menu in response to messages
// 3. View: renders the board, the seats and the journal
//
// The flow is: User Input -> Message -> Update -> New Model -> View -> Screen

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/shxl/internal/config"
	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/logbook"
)

// appState represents which "screen" we're on
type appState int

const (
	stateMainMenu appState = iota // Preset picker
	stateTable                    // Watching a game
)

const autoPlayInterval = 400 * time.Millisecond

type keyMap struct {
	Step key.Binding
	Auto key.Binding
	Back key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Step: key.NewBinding(key.WithKeys("n", " "), key.WithHelp("n/space", "step")),
	Auto: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-play")),
	Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "menu")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// AppOption customizes App construction for tests and alternate runtimes.
type AppOption func(*App)

// WithSeed fixes the seed used for every table opened from the menu.
func WithSeed(seed int64) AppOption {
	return func(a *App) { a.seed = seed }
}

// WithJournal replaces the file-backed journal.
func WithJournal(lb *logbook.Logbook) AppOption {
	return func(a *App) {
		if lb != nil {
			a.logbook = lb
		}
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Step, k.Auto, k.Back, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type autoTickMsg struct{}

// presetItem implements list.Item for the table presets.
type presetItem struct {
	title string
	desc  string
	rules game.Rules
	exit  bool
}

func (i presetItem) Title() string       { return i.title }
func (i presetItem) Description() string { return i.desc }
func (i presetItem) FilterValue() string { return i.title }

// App is the main application model. In bubbletea, this holds ALL your state.
type App struct {
	state    appState
	config   *config.Config
	logbook  *logbook.Logbook
	strategy string
	seed     int64

	mainMenu list.Model
	table    *tableView
	help     help.Model

	statusMsg string
	err       error

	width  int
	height int
}

// NewApp creates a new App for the project in projectDir.
func NewApp(projectDir string, opts ...AppOption) (*App, error) {
	cfg, err := config.Load(projectDir)
	if err != nil {
		return nil, err
	}
	app := &App{
		state:    stateMainMenu,
		config:   cfg,
		strategy: cfg.Project.Strategy,
		seed:     cfg.Project.Game.Seed,
		help:     help.New(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(app)
		}
	}
	if app.logbook == nil {
		lb, err := logbook.New(cfg.JournalPath(), logbook.WithMemory())
		if err != nil {
			return nil, fmt.Errorf("tui: open journal: %w", err)
		}
		app.logbook = lb
	}
	app.logbook.Info("Session opened · strategy %s", app.strategy)

	menu := list.New(buildMainMenu(cfg), list.NewDefaultDelegate(), 0, 0)
	menu.Title = "SECRET HITLER XL"
	menu.SetShowStatusBar(false)
	menu.SetFilteringEnabled(false)
	app.mainMenu = menu
	return app, nil
}

// buildMainMenu lists the configured table first, then a few variants.
func buildMainMenu(cfg *config.Config) []list.Item {
	rules := cfg.Rules()
	items := []list.Item{
		presetItem{
			title: fmt.Sprintf("Configured table (%d players)", rules.Players),
			desc:  describeRules(rules),
			rules: rules,
		},
		presetItem{
			title: "Classic (7 players)",
			desc:  "No communists, no anti-policies",
			rules: game.Rules{Players: 7},
		},
		presetItem{
			title: "Full XL (16 players)",
			desc:  "Communists, anti-policies and emergency powers",
			rules: game.Rules{Players: 16, Communists: true, AntiPolicies: true, EmergencyPowers: true},
		},
	}
	return append(items, presetItem{title: "Exit", desc: "Quit shxl", exit: true})
}

func describeRules(r game.Rules) string {
	parts := []string{}
	if r.Communists {
		parts = append(parts, "communists")
	}
	if r.AntiPolicies {
		parts = append(parts, "anti-policies")
	}
	if r.EmergencyPowers {
		parts = append(parts, "emergency powers")
	}
	if len(parts) == 0 {
		return "Base rules"
	}
	return "With " + strings.Join(parts, ", ")
}

// Init is called once when the program starts.
func (a *App) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.mainMenu.SetSize(max(0, msg.Width-6), max(0, msg.Height-6))
		a.help.Width = msg.Width
		if a.table != nil {
			a.table.resize(msg.Width, msg.Height)
		}
		return a, nil

	case autoTickMsg:
		if a.state != stateTable || a.table == nil || !a.table.auto {
			return a, nil
		}
		a.advance()
		if a.table.finished() {
			a.table.auto = false
			return a, nil
		}
		return a, scheduleAutoTick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			if msg.String() == "ctrl+c" || a.state == stateMainMenu {
				return a, tea.Quit
			}
		case key.Matches(msg, keys.Back):
			if a.state != stateMainMenu {
				return a.returnToMainMenu()
			}
		case a.state == stateTable && key.Matches(msg, keys.Step):
			a.advance()
			return a, nil
		case a.state == stateTable && key.Matches(msg, keys.Auto):
			return a, a.toggleAuto()
		case msg.String() == "enter" && a.state == stateMainMenu:
			return a.handleMainMenuSelection()
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case stateMainMenu:
		a.mainMenu, cmd = a.mainMenu.Update(msg)
	case stateTable:
		if a.table != nil {
			cmd = a.table.update(msg)
		}
	}
	return a, cmd
}

// handleMainMenuSelection processes menu item selection
func (a *App) handleMainMenuSelection() (tea.Model, tea.Cmd) {
	item, ok := a.mainMenu.SelectedItem().(presetItem)
	if !ok {
		return a, nil
	}
	if item.exit {
		a.logbook.Info("Menu · Exit selected")
		return a, tea.Quit
	}
	return a.openTable(item)
}

func (a *App) openTable(item presetItem) (tea.Model, tea.Cmd) {
	seed := a.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	table, err := newTableView(item.rules, a.strategy, seed, a.logbook)
	if err != nil {
		a.err = err
		a.statusMsg = fmt.Sprintf("Could not open table: %v", err)
		a.logbook.Error("Menu · %s failed: %v", item.title, err)
		return a, nil
	}
	a.logbook.Info("Menu · %s (seed %d)", item.title, seed)
	table.resize(a.width, a.height)
	a.table = table
	a.state = stateTable
	a.err = nil
	a.statusMsg = "Table ready"
	return a, nil
}

func (a *App) returnToMainMenu() (tea.Model, tea.Cmd) {
	if a.table != nil {
		a.table.auto = false
	}
	a.state = stateMainMenu
	a.statusMsg = ""
	return a, nil
}

func (a *App) advance() {
	if a.table == nil {
		return
	}
	if err := a.table.step(); err != nil {
		a.err = err
		a.statusMsg = err.Error()
		a.logbook.Error("%v", err)
		return
	}
	if a.table.finished() {
		a.statusMsg = fmt.Sprintf("Game over · %s wins", a.table.game.State.Winner)
	}
}

func (a *App) toggleAuto() tea.Cmd {
	if a.table == nil || a.table.finished() {
		return nil
	}
	a.table.auto = !a.table.auto
	if !a.table.auto {
		a.statusMsg = "Auto-play paused"
		return nil
	}
	a.statusMsg = "Auto-play running"
	return scheduleAutoTick()
}

func scheduleAutoTick() tea.Cmd {
	return tea.Tick(autoPlayInterval, func(time.Time) tea.Msg {
		return autoTickMsg{}
	})
}

// View renders the current screen.
func (a *App) View() string {
	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF6B6B")).
		MarginBottom(1).
		Render("⬡ SHXL")
	sections := []string{header}
	switch a.state {
	case stateTable:
		sections = append(sections, a.table.view(), a.help.View(keys))
	default:
		sections = append(sections, a.mainMenu.View())
	}
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1).
		Render(a.statusMsg)
	sections = append(sections, footer)
	return strings.Join(sections, "\n")
}
