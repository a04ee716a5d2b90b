package phase

import (
	"context"
	"errors"
	"fmt"

	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/power"
)

// DefaultStepLimit bounds Run for games that never terminate.
const DefaultStepLimit = 10000

// ErrStepLimit is returned when Run exceeds its step budget.
var ErrStepLimit = errors.New("phase: step limit exceeded")

// Machine steps a game through its phases.
type Machine struct {
	game    *game.Game
	powers  *power.Registry
	current Phase
	steps   int
	limit   int
	observe func(from, to Phase)
}

// Option customizes a machine.
type Option func(*Machine)

// WithPowers swaps the power registry.
func WithPowers(reg *power.Registry) Option {
	return func(m *Machine) {
		if reg != nil {
			m.powers = reg
		}
	}
}

// WithStepLimit caps the number of phase executions Run performs.
func WithStepLimit(limit int) Option {
	return func(m *Machine) {
		if limit > 0 {
			m.limit = limit
		}
	}
}

// WithObserver is called after every step with the phase that ran and the
// phase it returned.
func WithObserver(fn func(from, to Phase)) Option {
	return func(m *Machine) {
		m.observe = fn
	}
}

// NewMachine starts g at the Setup phase.
func NewMachine(g *game.Game, opts ...Option) *Machine {
	m := &Machine{game: g, limit: DefaultStepLimit}
	for _, opt := range opts {
		opt(m)
	}
	if m.powers == nil {
		m.powers = power.Default()
	}
	m.current = &Setup{Powers: m.powers}
	return m
}

// Current is the phase the next Step will execute.
func (m *Machine) Current() Phase {
	return m.current
}

// Steps is the number of phases executed so far.
func (m *Machine) Steps() int {
	return m.steps
}

// Game returns the game being driven.
func (m *Machine) Game() *game.Game {
	return m.game
}

// Done reports whether the game has reached the terminal phase.
func (m *Machine) Done() bool {
	_, over := m.current.(*GameOver)
	return over && m.game.State.GameOver
}

// Step executes the current phase once.
func (m *Machine) Step() (Phase, error) {
	from := m.current
	next, err := from.Execute(m.game)
	if err != nil {
		return nil, fmt.Errorf("phase: %s: %w", from.Name(), err)
	}
	m.steps++
	m.current = next
	if m.observe != nil {
		m.observe(from, next)
	}
	return next, nil
}

// Run steps until GameOver has executed and returned itself.
func (m *Machine) Run(ctx context.Context) (game.Winner, error) {
	for {
		if err := ctx.Err(); err != nil {
			return game.WinnerNone, err
		}
		if m.steps >= m.limit {
			return game.WinnerNone, fmt.Errorf("%w: %d", ErrStepLimit, m.limit)
		}
		from := m.current
		next, err := m.Step()
		if err != nil {
			return game.WinnerNone, err
		}
		if _, over := from.(*GameOver); over && next == from {
			return m.game.State.Winner, nil
		}
	}
}
