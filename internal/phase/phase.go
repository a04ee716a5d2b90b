// Package phase drives a game through setup, elections and legislative
// sessions until a side wins.
package phase

import (
	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/power"
)

// Phase is one state of the round machine. Execute runs the phase to
// completion against g and returns the phase to run next. Errors are only
// returned for defects: unknown powers, bad decider answers, an exhausted
// deck.
type Phase interface {
	Name() string
	Execute(g *game.Game) (Phase, error)
}

// Setup hands off to the first election. Dealing happens in game.New.
type Setup struct {
	Powers *power.Registry
}

func (s *Setup) Name() string { return "setup" }

func (s *Setup) Execute(g *game.Game) (Phase, error) {
	g.Logger.Info("setup complete: %d players seated", len(g.State.Players))
	return &Election{Powers: s.Powers}, nil
}

// GameOver is terminal. Executing it again changes nothing.
type GameOver struct{}

func (o *GameOver) Name() string { return "game_over" }

func (o *GameOver) Execute(g *game.Game) (Phase, error) {
	g.State.GameOver = true
	return o, nil
}

// chaos enacts the top card after a failed government. It reports whether
// the enactment won the game.
func chaos(g *game.Game) (bool, error) {
	if _, err := g.EnactChaos(); err != nil {
		return false, err
	}
	if g.CheckPolicyWin() {
		return true, nil
	}
	g.State.TermLimited = nil
	return false, nil
}
