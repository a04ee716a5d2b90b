package phase

import (
	"github.com/kingrea/shxl/internal/board"
	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/power"
)

// Legislative runs one session of the elected government.
type Legislative struct {
	Powers *power.Registry
}

func (l *Legislative) Name() string { return "legislative" }

func (l *Legislative) Execute(g *game.Game) (Phase, error) {
	s := g.State
	president, chancellor := s.President, s.Chancellor

	drawn, err := g.Board.Draw(3)
	if err != nil {
		return nil, err
	}
	kept, discarded, err := g.FilterPolicies(drawn)
	if err != nil {
		return nil, err
	}
	g.Board.Discard(discarded)
	s.LastDiscarded = discarded

	if g.Board.VetoAvailable && chancellor.Decider.ProposeVeto(g.View(chancellor), kept) {
		if president.Decider.AcceptVeto(g.View(president), kept) {
			g.Logger.Info("%s and %s veto the agenda", president, chancellor)
			return l.vetoed(g, kept)
		}
		g.Logger.Info("%s rejects the veto", president)
	}

	enacted, other, err := g.ChoosePolicy(kept)
	if err != nil {
		return nil, err
	}
	g.Board.Discard(other)
	s.LastDiscarded = other
	granted := g.Enact(enacted, false)
	s.ElectionTracker = 0
	g.ApplyTermLimits(president, chancellor)
	if g.CheckPolicyWin() {
		return &GameOver{}, nil
	}

	if granted != "" {
		res, err := power.Dispatch(g, l.powers(), granted)
		if err != nil {
			return nil, err
		}
		if board.IsExecution(granted) && res.Player != nil && res.Player.IsHitler() {
			g.HitlerExecuted()
			return &GameOver{}, nil
		}
		if g.CheckPolicyWin() {
			return &GameOver{}, nil
		}
		if granted == board.SpecialElection && res.OK {
			return &Election{Powers: l.Powers}, nil
		}
	}

	g.AdvancePresident()
	return &Election{Powers: l.Powers}, nil
}

func (l *Legislative) vetoed(g *game.Game, kept []policy.Policy) (Phase, error) {
	s := g.State
	g.Board.Discard(kept...)
	s.ElectionTracker++
	if s.ElectionTracker >= game.ChaosThreshold {
		won, err := chaos(g)
		if err != nil {
			return nil, err
		}
		if won {
			return &GameOver{}, nil
		}
	}
	g.AdvancePresident()
	return &Election{Powers: l.Powers}, nil
}

func (l *Legislative) powers() *power.Registry {
	if l.Powers == nil {
		return power.Default()
	}
	return l.Powers
}
