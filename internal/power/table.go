package power

import (
	"github.com/kingrea/shxl/internal/board"
	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

func table() []Power {
	return []Power{
		targeted(board.InvestigateLoyalty, OwnerPresident, game.PurposeInvestigate, investigateLoyalty),
		targeted(board.SpecialElection, OwnerPresident, game.PurposeSpecialElection, specialElection),
		noArgs(board.PolicyPeek, OwnerPresident, policyPeek),
		targeted(board.Execution, OwnerPresident, game.PurposeKill, execution),

		noArgs(board.Confession, OwnerPresident, confession),
		targeted(board.Bugging, OwnerPresident, game.PurposeBug, bugging),
		noArgs(board.FiveYearPlan, OwnerPresident, fiveYearPlan),
		noArgs(board.Congress, OwnerPresident, congress),
		targeted(board.Radicalization, OwnerPresident, game.PurposeRadicalize, radicalization),

		noArgs(board.Propaganda, OwnerPresident, propaganda(OwnerPresident)),
		{
			Info:       Info{Name: board.Impeachment, Owner: OwnerPresident, Arity: ArityImpeach, Purpose: game.PurposeImpeach},
			runImpeach: presidentialImpeachment,
		},
		targeted(board.MarkedForExecution, OwnerPresident, game.PurposeMark, markForExecution(OwnerPresident)),
		noArgs(board.PolicyPeekEmergency, OwnerPresident, policyPeek),
		targeted(board.ExecutionEmergency, OwnerPresident, game.PurposeKill, execution),
		noArgs(board.Pardon, OwnerPresident, pardon),

		noArgs(board.ChancellorPropaganda, OwnerChancellor, propaganda(OwnerChancellor)),
		{
			Info:        Info{Name: board.ChancellorImpeachment, Owner: OwnerChancellor, Arity: ArityRevealer},
			runRevealer: chancellorImpeachment,
		},
		targeted(board.ChancellorMarkedForExecution, OwnerChancellor, game.PurposeMark, markForExecution(OwnerChancellor)),
		noArgs(board.ChancellorPolicyPeek, OwnerChancellor, policyPeek),
		targeted(board.ChancellorExecution, OwnerChancellor, game.PurposeKill, execution),
		noArgs(board.VoteOfNoConfidence, OwnerChancellor, voteOfNoConfidence),
	}
}

func actor(g *game.Game, owner Owner) *game.Player {
	if owner == OwnerChancellor {
		return g.State.Chancellor
	}
	return g.State.President
}

func investigateLoyalty(g *game.Game, target *game.Player) Result {
	s := g.State
	s.Investigated = append(s.Investigated, target)
	if s.President != nil {
		s.President.Learn(target)
	}
	g.Logger.Info("%s investigates %s", s.President, target)
	return Result{Player: target, Party: target.Party(), OK: true}
}

func specialElection(g *game.Game, target *game.Player) Result {
	s := g.State
	if s.President != nil {
		s.SpecialElectionReturnID = s.President.ID
	}
	s.SpecialElection = true
	s.PresidentCandidate = target
	g.Logger.Info("%s calls a special election: %s is the next candidate", s.President, target)
	return Result{Player: target, OK: true}
}

func policyPeek(g *game.Game) Result {
	top := g.Board.Peek(3)
	g.Logger.Info("the top %d policies are peeked", len(top))
	return Result{Policies: top, OK: true}
}

func execution(g *game.Game, target *game.Player) Result {
	g.State.Kill(target)
	g.Logger.Info("%s is executed", target)
	return Result{Player: target, OK: true}
}

func confession(g *game.Game) Result {
	s := g.State
	president := s.President
	if president == nil {
		return Result{}
	}
	s.RevealedAffiliations[president.ID] = president.Party()
	g.Logger.Info("%s confesses: %s", president, president.Party())
	return Result{Player: president, Party: president.Party(), OK: true}
}

func bugging(g *game.Game, target *game.Player) Result {
	for _, p := range g.State.Players {
		if p.Party() == role.PartyCommunist {
			p.Learn(target)
		}
	}
	g.Logger.Info("the communists bug %s", target)
	return Result{Player: target, OK: true}
}

func fiveYearPlan(g *game.Game) Result {
	g.Board.Prepend(policy.Communist, policy.Communist, policy.Liberal)
	if g.Rules.FiveYearPlanShuffle {
		g.Board.Shuffle()
	}
	g.Logger.Info("five year plan: two communist and one liberal policy join the deck")
	return Result{OK: true}
}

func congress(g *game.Game) Result {
	var ids []string
	for _, p := range g.State.Players {
		if p.Party() == role.PartyCommunist {
			ids = append(ids, p.ID)
		}
	}
	for _, p := range g.State.Players {
		if p.Party() == role.PartyCommunist {
			p.KnownCommunists = append([]string(nil), ids...)
		}
	}
	g.Logger.Info("congress convenes: %d communists", len(ids))
	return Result{PlayerIDs: ids, OK: true}
}

func radicalization(g *game.Game, target *game.Player) Result {
	if target.IsHitler() {
		g.Logger.Info("radicalization of %s fails", target)
		return Result{}
	}
	target.Role = role.Communist
	g.Logger.Info("%s is radicalized", target)
	return Result{Player: target, OK: true}
}

func propaganda(owner Owner) func(*game.Game) Result {
	return func(g *game.Game) Result {
		top := g.Board.Peek(1)
		if len(top) == 0 {
			return Result{}
		}
		acting := actor(g, owner)
		if acting != nil && acting.Decider.PropagandaDecision(g.View(acting), top[0]) {
			g.Board.TakeTop()
			g.Board.Discard(top[0])
			g.Logger.Info("%s discards the top policy", acting)
		}
		return Result{Policy: top[0], OK: true}
	}
}

// Impeachment reveals target's party to revealer.
func Impeachment(g *game.Game, target, revealer *game.Player) Result {
	revealer.Learn(target)
	g.Logger.Info("%s reveals their party to %s", target, revealer)
	return Result{Player: target, OK: true}
}

func presidentialImpeachment(g *game.Game, target, revealer *game.Player) Result {
	if revealer == nil {
		revealer = chooseRevealer(g, target)
		if revealer == nil {
			return Result{}
		}
	}
	return Impeachment(g, target, revealer)
}

func chancellorImpeachment(g *game.Game, revealer *game.Player) Result {
	target := g.State.Chancellor
	if target == nil {
		return Result{}
	}
	return presidentialImpeachment(g, target, revealer)
}

// chooseRevealer asks the president to pick who sees target's party from the
// active players other than the president and target.
func chooseRevealer(g *game.Game, target *game.Player) *game.Player {
	president := g.State.President
	if president == nil {
		return nil
	}
	eligible := g.State.ActiveExcept(president, target)
	if len(eligible) == 0 {
		return nil
	}
	return president.Decider.ChooseRevealer(g.View(president), eligible)
}

func markForExecution(owner Owner) func(*game.Game, *game.Player) Result {
	return func(g *game.Game, target *game.Player) Result {
		track := g.Board.Fascist.Count
		g.State.Mark(target, track)
		g.Logger.Info("%s marks %s for execution", actor(g, owner), target)
		g.Logger.Info("fascist track is %d: %s dies after %d more fascist policies unless pardoned", track, target, game.MarkDelay)
		return Result{Player: target, OK: true}
	}
}

func pardon(g *game.Game) Result {
	s := g.State
	marked := s.MarkedForExecution
	if marked == nil {
		g.Logger.Info("pardon: nobody is marked for execution")
		return Result{}
	}
	s.ClearMark()
	g.Logger.Info("%s is pardoned", marked)
	return Result{Player: marked, OK: true}
}

func voteOfNoConfidence(g *game.Game) Result {
	s := g.State
	p := s.LastDiscarded
	if !p.Valid() {
		return Result{}
	}
	s.LastDiscarded = ""
	if rest, ok := policy.Remove(g.Board.DiscardPile, p); ok {
		g.Board.DiscardPile = rest
	} else if rest, ok := policy.Remove(g.Board.DrawPile, p); ok {
		g.Board.DrawPile = rest
	}
	g.Logger.Info("vote of no confidence: the discarded %s policy is enacted", p)
	g.EnactWithoutPower(p)
	return Result{Policy: p, OK: true}
}
