package tui

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kingrea/shxl/internal/board"
	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/logbook"
	"github.com/kingrea/shxl/internal/phase"
	"github.com/kingrea/shxl/internal/role"
	"github.com/kingrea/shxl/internal/strategy"
)

const journalTail = 200

var (
	liberalStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	fascistStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true)
	communistStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	panelStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// tableView watches one game driven by automated seats.
type tableView struct {
	machine  *phase.Machine
	game     *game.Game
	journal  *logbook.Logbook
	journalV viewport.Model
	auto     bool
	err      error
}

func newTableView(rules game.Rules, strat string, seed int64, journal *logbook.Logbook) (*tableView, error) {
	if rules.Players < role.MinPlayers || rules.Players > role.MaxPlayers {
		return nil, fmt.Errorf("tui: players must be between %d and %d", role.MinPlayers, role.MaxPlayers)
	}
	seats, err := strategy.Seats(strat, rules.Players, seed)
	if err != nil {
		return nil, err
	}
	g, err := game.New(rules, seats,
		game.WithRand(rand.New(rand.NewSource(seed))),
		game.WithLogger(journal),
		strategy.Oktoberfest(seed),
	)
	if err != nil {
		return nil, err
	}
	v := &tableView{game: g, journal: journal, journalV: viewport.New(60, 10)}
	v.machine = phase.NewMachine(g, phase.WithObserver(func(from, to phase.Phase) {
		if from.Name() != to.Name() {
			journal.Info("Phase · %s -> %s", from.Name(), to.Name())
		}
	}))
	journal.Info("Table · game %s with %d players", g.ID, rules.Players)
	v.refreshJournal()
	return v, nil
}

func (v *tableView) finished() bool {
	return v.machine.Done()
}

// step executes one phase unless the game is already over.
func (v *tableView) step() error {
	if v.finished() {
		return nil
	}
	_, err := v.machine.Step()
	if err != nil {
		v.err = err
		v.auto = false
	}
	v.refreshJournal()
	return err
}

func (v *tableView) refreshJournal() {
	lines, _ := v.journal.Tail(journalTail)
	v.journalV.SetContent(strings.Join(lines, "\n"))
	v.journalV.GotoBottom()
}

func (v *tableView) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	v.journalV.Width = max(20, width-4)
	v.journalV.Height = max(5, height/3)
}

func (v *tableView) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	v.journalV, cmd = v.journalV.Update(msg)
	return cmd
}

func (v *tableView) view() string {
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Render(v.renderBoard()),
		panelStyle.Render(v.renderSeats()),
	)
	_, total := v.journal.Tail(0)
	journal := panelStyle.Render(fmt.Sprintf("%s\n%s",
		mutedStyle.Render(fmt.Sprintf("JOURNAL · %d entries", total)),
		v.journalV.View(),
	))
	return lipgloss.JoinVertical(lipgloss.Left, top, journal)
}

func (v *tableView) renderBoard() string {
	b := v.game.Board
	s := v.game.State
	lines := []string{
		fmt.Sprintf("Round %d · %s · %s", s.Round, s.MonthName(), v.machine.Current().Name()),
		trackBar("Liberal", b.Track(role.PartyLiberal), liberalStyle, nil),
		trackBar("Fascist", b.Track(role.PartyFascist), fascistStyle, func(i int) string { return b.PowerAt(role.PartyFascist, i) }),
	}
	if communist := b.Track(role.PartyCommunist); communist.Size > 0 {
		lines = append(lines, trackBar("Communist", communist, communistStyle, func(i int) string { return b.PowerAt(role.PartyCommunist, i) }))
	}
	lines = append(lines,
		fmt.Sprintf("Election tracker %d/%d", s.ElectionTracker, game.ChaosThreshold),
		fmt.Sprintf("Draw %d · Discard %d", len(b.DrawPile), len(b.DiscardPile)),
	)
	if s.Oktoberfest {
		lines = append(lines, communistStyle.Render("Oktoberfest: every seat plays at random"))
	}
	if b.VetoAvailable {
		lines = append(lines, "Veto unlocked")
	}
	if s.GameOver {
		lines = append(lines, fascistStyle.Render(fmt.Sprintf("Winner: %s", s.Winner)))
	}
	return strings.Join(lines, "\n")
}

// trackBar renders filled slots as ■ and empty ones as □, flagging slots
// that grant a power with *.
func trackBar(label string, t board.Track, style lipgloss.Style, powerAt func(int) string) string {
	var sb strings.Builder
	for i := 1; i <= t.Size; i++ {
		switch {
		case i <= t.Count:
			sb.WriteString("■")
		case powerAt != nil && powerAt(i) != "":
			sb.WriteString("*")
		default:
			sb.WriteString("□")
		}
	}
	return fmt.Sprintf("%-10s %s %d/%d", label, style.Render(sb.String()), t.Count, t.Size)
}

func (v *tableView) renderSeats() string {
	s := v.game.State
	lines := []string{mutedStyle.Render("SEATS")}
	for _, p := range s.Players {
		marker := " "
		switch p {
		case s.President:
			marker = "P"
		case s.Chancellor:
			marker = "C"
		}
		name := fmt.Sprintf("%s %-14s %-9s", marker, p.Name, p.Role)
		switch {
		case p.Dead:
			name = mutedStyle.Render(name + " dead")
		case p.Party() == role.PartyFascist:
			name = fascistStyle.Render(name)
		case p.Party() == role.PartyCommunist:
			name = communistStyle.Render(name)
		default:
			name = liberalStyle.Render(name)
		}
		if s.MarkedForExecution == p {
			name += " marked"
		}
		lines = append(lines, name)
	}
	return strings.Join(lines, "\n")
}
