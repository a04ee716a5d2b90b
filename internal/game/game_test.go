package game_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/game/gametest"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

func seats(n int, d game.Decider) []game.Seat {
	out := make([]game.Seat, n)
	for i := range out {
		out[i] = game.Seat{Decider: d}
	}
	return out
}

func TestNewDealsHandbookRoles(t *testing.T) {
	rules := game.Rules{Players: 10, Communists: true}
	g, err := game.New(rules, seats(10, &gametest.Scripted{}), game.WithRand(rand.New(rand.NewSource(4))))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	counts := map[role.Role]int{}
	ids := map[string]bool{}
	for _, p := range g.State.Players {
		counts[p.Role]++
		ids[p.ID] = true
	}
	if counts[role.Liberal] != 5 || counts[role.Fascist] != 2 || counts[role.Communist] != 2 || counts[role.Hitler] != 1 {
		t.Fatalf("unexpected roles %v", counts)
	}
	if len(ids) != 10 {
		t.Fatalf("player ids not unique")
	}
	if g.State.PresidentCandidate == nil || len(g.State.Active) != 10 {
		t.Fatalf("setup incomplete")
	}
	if got := len(g.Board.DrawPile); got != 23 {
		t.Fatalf("draw pile = %d, want 23", got)
	}
}

func TestNewIsDeterministicForSeed(t *testing.T) {
	rules := game.Rules{Players: 8, Communists: true}
	a, err := game.New(rules, seats(8, &gametest.Scripted{}), game.WithRand(rand.New(rand.NewSource(11))))
	if err != nil {
		t.Fatal(err)
	}
	b, err := game.New(rules, seats(8, &gametest.Scripted{}), game.WithRand(rand.New(rand.NewSource(11))))
	if err != nil {
		t.Fatal(err)
	}
	if a.ID != b.ID || a.State.PresidentCandidate.Seat != b.State.PresidentCandidate.Seat {
		t.Fatalf("games differ for identical seeds")
	}
	for i := range a.State.Players {
		if a.State.Players[i].Role != b.State.Players[i].Role {
			t.Fatalf("seat %d role differs", i)
		}
	}
}

func TestNewRejectsBadTables(t *testing.T) {
	if _, err := game.New(game.Rules{Players: 6}, seats(5, &gametest.Scripted{})); err == nil {
		t.Fatalf("expected seat count error")
	}
	if _, err := game.New(game.Rules{Players: 6}, []game.Seat{{}, {}, {}, {}, {}, {}}); err == nil {
		t.Fatalf("expected missing decider error")
	}
	if _, err := game.New(game.Rules{Players: 4}, seats(4, &gametest.Scripted{})); err == nil {
		t.Fatalf("expected player count error")
	}
}

func TestSetupKnowledgeSmallGame(t *testing.T) {
	// seats: L L L L F H C
	g := gametest.NewGame(t, game.Rules{Communists: true}, gametest.Roles(4, 1, 1), nil, &gametest.Scripted{})
	players := g.State.Players
	fascist, hitler, communist := players[4], players[5], players[6]
	if fascist.KnownAffiliations[hitler.ID] != role.PartyFascist {
		t.Fatalf("fascist should know hitler")
	}
	if hitler.KnownAffiliations[fascist.ID] != role.PartyFascist {
		t.Fatalf("hitler should know the fascist below eight players")
	}
	if len(communist.KnownCommunists) != 0 {
		t.Fatalf("lone communist knows %v", communist.KnownCommunists)
	}
	if len(players[0].KnownAffiliations) != 0 {
		t.Fatalf("liberal knows %v", players[0].KnownAffiliations)
	}
}

func TestSetupKnowledgeLargerGame(t *testing.T) {
	// seats: L L L L L F F H C C
	g := gametest.NewGame(t, game.Rules{Communists: true}, gametest.Roles(5, 2, 2), nil, &gametest.Scripted{})
	players := g.State.Players
	hitler, c1, c2 := players[7], players[8], players[9]
	if len(hitler.KnownAffiliations) != 0 {
		t.Fatalf("hitler should know nobody at ten players")
	}
	if len(c1.KnownCommunists) != 1 || c1.KnownCommunists[0] != c2.ID {
		t.Fatalf("communist knowledge = %v", c1.KnownCommunists)
	}
}

func TestEligibleChancellorsSkipsCandidateAndTermLimited(t *testing.T) {
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(3, 1, 0), nil, &gametest.Scripted{})
	s := g.State
	s.TermLimited = []*game.Player{s.Players[1]}
	eligible := s.EligibleChancellors()
	if len(eligible) != 3 {
		t.Fatalf("eligible = %v", eligible)
	}
	for _, p := range eligible {
		if p == s.Players[0] || p == s.Players[1] {
			t.Fatalf("%s should not be eligible", p)
		}
	}
}

func TestNominateRejectsIneligibleChoice(t *testing.T) {
	d := &gametest.Scripted{}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(3, 1, 0), nil, d)
	d.Nominate = func(v game.View, eligible []*game.Player) *game.Player { return v.Self }
	if _, err := g.NominateChancellor(); !errors.Is(err, game.ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

func TestVoteNeedsStrictMajority(t *testing.T) {
	d := &gametest.Scripted{}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), nil, d)
	s := g.State
	s.ChancellorCandidate = s.Players[1]
	d.Ballot = func(v game.View, _, _ *game.Player) bool { return v.Self.Seat < 3 }
	if g.Vote() {
		t.Fatalf("a 3-3 tie must fail")
	}
	d.Ballot = func(v game.View, _, _ *game.Player) bool { return v.Self.Seat < 4 }
	if !g.Vote() {
		t.Fatalf("4 ja of 6 must pass")
	}
	if len(s.Governments) != 2 || s.Governments[0].Passed || !s.Governments[1].Passed {
		t.Fatalf("government history = %+v", s.Governments)
	}
	if len(s.Governments[1].Ballots) != 6 {
		t.Fatalf("ballots = %v", s.Governments[1].Ballots)
	}
}

func TestTermLimitsDependOnTableSize(t *testing.T) {
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(5, 2, 0), nil, &gametest.Scripted{})
	s := g.State
	g.ApplyTermLimits(s.Players[0], s.Players[1])
	if len(s.TermLimited) != 2 {
		t.Fatalf("eight active players: term limited = %v", s.TermLimited)
	}
	s.Kill(s.Players[7])
	g.ApplyTermLimits(s.Players[0], s.Players[1])
	if len(s.TermLimited) != 1 || s.TermLimited[0] != s.Players[1] {
		t.Fatalf("seven active players: term limited = %v", s.TermLimited)
	}
}

func TestAdvancePresidentSkipsDeadSeats(t *testing.T) {
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), nil, &gametest.Scripted{})
	s := g.State
	s.President = s.Players[0]
	s.Kill(s.Players[1])
	g.AdvancePresident()
	if s.PresidentCandidate != s.Players[2] {
		t.Fatalf("candidate = %s, want p2", s.PresidentCandidate)
	}
	s.President = s.Players[5]
	g.AdvancePresident()
	if s.PresidentCandidate != s.Players[0] {
		t.Fatalf("rotation should wrap, got %s", s.PresidentCandidate)
	}
}

func TestAdvancePresidentResumesAfterSpecialElection(t *testing.T) {
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), nil, &gametest.Scripted{})
	s := g.State
	s.SpecialElection = true
	s.SpecialElectionReturnID = s.Players[1].ID
	s.President = s.Players[4]
	g.AdvancePresident()
	if s.PresidentCandidate != s.Players[2] {
		t.Fatalf("candidate = %s, want p2", s.PresidentCandidate)
	}
	if s.SpecialElection || s.SpecialElectionReturnID != "" {
		t.Fatalf("special election flags not cleared")
	}
}

func TestResolveMarkNeedsThreeFascistPolicies(t *testing.T) {
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), nil, &gametest.Scripted{})
	s := g.State
	target := s.Players[3]
	s.Mark(target, 1)
	g.Board.Fascist.Count = 3
	if got := g.ResolveMark(); got != nil {
		t.Fatalf("executed %s after two policies", got)
	}
	g.Board.Fascist.Count = 4
	if got := g.ResolveMark(); got != target {
		t.Fatalf("ResolveMark = %v, want %s", got, target)
	}
	if !target.Dead || s.IsActive(target) || s.MarkedForExecution != nil {
		t.Fatalf("mark not resolved")
	}
}

func TestResolveMarkMovesCandidacyOffTheDead(t *testing.T) {
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), nil, &gametest.Scripted{})
	s := g.State
	s.Mark(s.Players[0], 0)
	g.Board.Fascist.Count = 3
	g.ResolveMark()
	if s.PresidentCandidate != s.Players[1] {
		t.Fatalf("candidate = %s, want p1", s.PresidentCandidate)
	}
}

func TestEnactChaosResetsTracker(t *testing.T) {
	deck := []policy.Policy{policy.Fascist, policy.Liberal, policy.Liberal}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), deck, &gametest.Scripted{})
	g.Board.Fascist.Count = 2
	g.State.ElectionTracker = 3
	p, err := g.EnactChaos()
	if err != nil {
		t.Fatalf("EnactChaos: %v", err)
	}
	if p != policy.Fascist || g.State.ElectionTracker != 0 {
		t.Fatalf("chaos enacted %s, tracker %d", p, g.State.ElectionTracker)
	}
	last := g.State.Enactments[len(g.State.Enactments)-1]
	if !last.Chaos || last.Power != "" {
		t.Fatalf("chaos enactment recorded as %+v", last)
	}
}

func TestCheckPolicyWin(t *testing.T) {
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), nil, &gametest.Scripted{})
	if g.CheckPolicyWin() {
		t.Fatalf("fresh game already won")
	}
	g.Board.Liberal.Count = 5
	if !g.CheckPolicyWin() || g.State.Winner != game.WinnerLiberal || !g.State.GameOver {
		t.Fatalf("liberal win not declared: %+v", g.State.Winner)
	}
}

func TestFilterPoliciesValidatesCards(t *testing.T) {
	d := &gametest.Scripted{}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), nil, d)
	g.State.President = g.State.Players[0]
	drawn := []policy.Policy{policy.Liberal, policy.Fascist, policy.Fascist}
	d.Filter = func(game.View, []policy.Policy) ([]policy.Policy, policy.Policy) {
		return []policy.Policy{policy.Liberal, policy.Liberal}, policy.Fascist
	}
	if _, _, err := g.FilterPolicies(drawn); !errors.Is(err, game.ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
	d.Filter = nil
	kept, discarded, err := g.FilterPolicies(drawn)
	if err != nil || len(kept) != 2 || discarded != policy.Fascist {
		t.Fatalf("FilterPolicies = %v %s %v", kept, discarded, err)
	}
}
