// Package game holds the shared game aggregate: players, the board, the
// mutable state, and the rule operations phases and powers build on.
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/kingrea/shxl/internal/board"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

// Rules are the table options fixed at setup.
type Rules struct {
	Players             int
	Communists          bool
	AntiPolicies        bool
	EmergencyPowers     bool
	FiveYearPlanShuffle bool
}

// DeckOptions maps the rules onto the deck factory.
func (r Rules) DeckOptions() policy.DeckOptions {
	return policy.DeckOptions{
		Players:         r.Players,
		Communists:      r.Communists,
		AntiPolicies:    r.Communists && r.AntiPolicies,
		EmergencyPowers: r.EmergencyPowers,
	}
}

// Logger receives the game journal. Implementations must not fail the game.
type Logger interface {
	Info(format string, args ...any)
}

// NopLogger discards journal lines.
type NopLogger struct{}

// Info implements Logger.
func (NopLogger) Info(string, ...any) {}

// Seat describes a player joining the table.
type Seat struct {
	Name    string
	Decider Decider
}

// ErrInvalidDecision is returned when a decider answers outside the options
// it was offered.
var ErrInvalidDecision = errors.New("game: invalid decision")

// Game is the root a phase machine runs against.
type Game struct {
	ID     string
	Rules  Rules
	Board  *board.Board
	State  *State
	Logger Logger

	rng   *rand.Rand
	roles []role.Role
	deck  []policy.Policy

	month    int
	festival func(*Player) Decider
	sober    map[string]Decider
}

// Option customizes a game at construction.
type Option func(*Game)

// WithRand injects the random source used for roles, shuffles and picks.
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) {
		if rng != nil {
			g.rng = rng
		}
	}
}

// WithLogger routes the journal to logger.
func WithLogger(logger Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.Logger = logger
		}
	}
}

// WithRoles deals roles in seat order instead of shuffling the handbook
// distribution.
func WithRoles(roles ...role.Role) Option {
	return func(g *Game) {
		g.roles = roles
	}
}

// WithDeck replaces the generated draw pile. DrawPile[0] is the top card.
func WithDeck(deck ...policy.Policy) Option {
	return func(g *Game) {
		g.deck = deck
	}
}

// New seats the players, deals roles, builds the board and informs each
// faction of what it may know.
func New(rules Rules, seats []Seat, opts ...Option) (*Game, error) {
	g := &Game{
		Rules:  rules,
		Logger: NopLogger{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if len(seats) != rules.Players {
		return nil, fmt.Errorf("game: %d seats for %d players", len(seats), rules.Players)
	}
	g.Rules.AntiPolicies = rules.Communists && rules.AntiPolicies

	roles := g.roles
	if roles == nil {
		dealt, err := role.Deal(rules.Players, rules.Communists, g.rng)
		if err != nil {
			return nil, fmt.Errorf("game: %w", err)
		}
		roles = dealt
	}
	if len(roles) != len(seats) {
		return nil, fmt.Errorf("game: %d roles for %d seats", len(roles), len(seats))
	}

	id, err := g.newID()
	if err != nil {
		return nil, err
	}
	g.ID = id

	state := &State{RevealedAffiliations: make(map[string]role.Party), Round: 1}
	for i, seat := range seats {
		if seat.Decider == nil {
			return nil, fmt.Errorf("game: seat %d (%s) has no decider", i, seat.Name)
		}
		pid, err := g.newID()
		if err != nil {
			return nil, err
		}
		name := seat.Name
		if name == "" {
			name = fmt.Sprintf("player-%d", i+1)
		}
		state.Players = append(state.Players, &Player{
			ID:                pid,
			Name:              name,
			Seat:              i,
			Role:              roles[i],
			KnownAffiliations: make(map[string]role.Party),
			Decider:           seat.Decider,
		})
	}
	state.Active = append([]*Player(nil), state.Players...)
	g.State = state

	deck := g.deck
	if deck == nil {
		deck = policy.NewDeck(g.Rules.DeckOptions(), g.rng)
	}
	g.Board = board.New(rules.Players, rules.Communists, deck, g.rng)

	g.informPlayers()
	state.PresidentCandidate = state.Active[g.rng.Intn(len(state.Active))]
	g.Logger.Info("game %s: %d players, communists=%t anti=%t emergency=%t",
		g.ID, rules.Players, rules.Communists, g.Rules.AntiPolicies, rules.EmergencyPowers)
	g.Logger.Info("first presidential candidate: %s", state.PresidentCandidate)
	g.openCalendar()
	return g, nil
}

func (g *Game) newID() (string, error) {
	id, err := uuid.NewRandomFromReader(g.rng)
	if err != nil {
		return "", fmt.Errorf("game: generate id: %w", err)
	}
	return id.String(), nil
}

// View builds the decision context for p.
func (g *Game) View(p *Player) View {
	return View{Self: p, State: g.State, Board: g.Board, Rules: g.Rules}
}

// informPlayers hands out setup knowledge. Fascists see the fascist team and
// Hitler; Hitler sees the fascists only in small games; communists see each
// other below eleven players.
func (g *Game) informPlayers() {
	players := g.State.Players
	for _, p := range players {
		switch {
		case p.Role == role.Fascist:
			for _, other := range players {
				if other != p && other.Party() == role.PartyFascist {
					p.Learn(other)
				}
			}
		case p.IsHitler() && g.Rules.Players < 8:
			for _, other := range players {
				if other.Role == role.Fascist {
					p.Learn(other)
				}
			}
		case p.Role == role.Communist && g.Rules.Communists && g.Rules.Players < 11:
			for _, other := range players {
				if other != p && other.Role == role.Communist {
					p.KnownCommunists = append(p.KnownCommunists, other.ID)
					p.Learn(other)
				}
			}
		}
	}
}
