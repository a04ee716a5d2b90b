package phase

import (
	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/power"
)

// HitlerChancellorThreshold is the fascist track position from which electing
// Hitler chancellor wins the game for the fascists.
const HitlerChancellorThreshold = 3

// Election nominates and votes on a government. A failed vote or a missing
// nominee returns the same Election to retry.
type Election struct {
	Powers *power.Registry
}

func (e *Election) Name() string { return "election" }

func (e *Election) Execute(g *game.Game) (Phase, error) {
	s := g.State
	if executed := g.ResolveMark(); executed != nil && executed.IsHitler() {
		g.HitlerExecuted()
		return &GameOver{}, nil
	}

	nominee, err := g.NominateChancellor()
	if err != nil {
		return nil, err
	}
	s.ChancellorCandidate = nominee
	if nominee == nil {
		g.Logger.Info("no eligible chancellor for %s: enacting a chaos policy", s.PresidentCandidate)
		won, err := chaos(g)
		if err != nil {
			return nil, err
		}
		if won {
			return &GameOver{}, nil
		}
		return e, nil
	}

	if g.Vote() {
		if g.Board.Fascist.Count >= HitlerChancellorThreshold && nominee.IsHitler() {
			g.Logger.Info("Hitler was elected chancellor with %d fascist policies enacted", g.Board.Fascist.Count)
			s.Declare(game.WinnerFascist)
			return &GameOver{}, nil
		}
		s.President = s.PresidentCandidate
		s.Chancellor = nominee
		s.ElectionTracker = 0
		return &Legislative{Powers: e.Powers}, nil
	}

	s.President = s.PresidentCandidate
	s.ElectionTracker++
	g.Logger.Info("election tracker at %d", s.ElectionTracker)
	if s.ElectionTracker >= game.ChaosThreshold {
		g.Logger.Info("%d failed governments: enacting a chaos policy", game.ChaosThreshold)
		won, err := chaos(g)
		if err != nil {
			return nil, err
		}
		if won {
			return &GameOver{}, nil
		}
	}
	g.AdvancePresident()
	return e, nil
}
