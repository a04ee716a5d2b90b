package power

import (
	"fmt"

	"github.com/kingrea/shxl/internal/board"
	"github.com/kingrea/shxl/internal/game"
)

// Dispatch runs the named power through its query flow. The owning office
// acts; targets come from the actor's decider and are drawn from the active
// players other than the actor. Impeachment revealers are always picked by
// the president.
func Dispatch(g *game.Game, reg *Registry, name string) (Result, error) {
	b, err := reg.Get(name, g)
	if err != nil {
		return Result{}, err
	}
	info := b.Info()
	acting := actor(g, info.Owner)
	if acting == nil {
		return Result{}, fmt.Errorf("power: no %s seated to wield %s", info.Owner, name)
	}

	switch info.Arity {
	case ArityNone:
		if name == board.Pardon && !pardonGranted(g, acting) {
			return Result{}, nil
		}
		return b.Execute()
	case ArityTarget, ArityImpeach:
		eligible := g.State.ActiveExcept(acting)
		if len(eligible) == 0 {
			return Result{}, nil
		}
		target := acting.Decider.ChooseTarget(g.View(acting), info.Purpose, eligible)
		if !contains(eligible, target) {
			return Result{}, fmt.Errorf("%w: %s chose %s for %s", game.ErrInvalidDecision, acting, target, name)
		}
		if info.Arity == ArityImpeach {
			return b.ExecuteWith(target, nil)
		}
		return b.ExecuteOn(target)
	case ArityRevealer:
		return b.ExecuteRevealing(nil)
	}
	return Result{}, fmt.Errorf("%w: %s has unsupported arity %s", ErrArity, name, info.Arity)
}

// pardonGranted asks the president whether to lift a pending mark. With
// nobody marked the pardon runs and reports the no-op itself.
func pardonGranted(g *game.Game, president *game.Player) bool {
	marked := g.State.MarkedForExecution
	if marked == nil {
		return true
	}
	if president.Decider.PardonDecision(g.View(president), marked) {
		return true
	}
	g.Logger.Info("%s declines to pardon %s", president, marked)
	return false
}

func contains(list []*game.Player, p *game.Player) bool {
	if p == nil {
		return false
	}
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
