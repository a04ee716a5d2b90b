package phase_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/kingrea/shxl/internal/board"
	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/game/gametest"
	"github.com/kingrea/shxl/internal/phase"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/power"
)

func deckOf(top ...policy.Policy) []policy.Policy {
	return append(top, gametest.Repeat(policy.Liberal, 20)...)
}

func nein(game.View, *game.Player, *game.Player) bool { return false }

func TestThreeFailedElectionsEnactOneChaosPolicy(t *testing.T) {
	d := &gametest.Scripted{Ballot: nein}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), deckOf(policy.Fascist), d)
	e := &phase.Election{Powers: power.Default()}

	for i := 0; i < 2; i++ {
		next, err := e.Execute(g)
		if err != nil {
			t.Fatalf("election %d: %v", i, err)
		}
		if next != e {
			t.Fatalf("failed election must return the same phase")
		}
	}
	if g.State.ElectionTracker != 2 || len(g.State.Enactments) != 0 {
		t.Fatalf("tracker %d, enactments %d", g.State.ElectionTracker, len(g.State.Enactments))
	}
	next, err := e.Execute(g)
	if err != nil {
		t.Fatalf("third election: %v", err)
	}
	if next != e {
		t.Fatalf("third failure must return the same phase")
	}
	s := g.State
	if s.ElectionTracker != 0 {
		t.Fatalf("tracker = %d, want 0", s.ElectionTracker)
	}
	if len(s.Enactments) != 1 || !s.Enactments[0].Chaos || s.Enactments[0].Policy != policy.Fascist {
		t.Fatalf("enactments = %+v", s.Enactments)
	}
	if g.Board.Fascist.Count != 1 {
		t.Fatalf("fascist track = %d, want 1", g.Board.Fascist.Count)
	}
	if s.PresidentCandidate != s.Players[3] {
		t.Fatalf("candidate = %s, want p3", s.PresidentCandidate)
	}
}

func TestNoEligibleChancellorEnactsChaos(t *testing.T) {
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), deckOf(policy.Liberal), &gametest.Scripted{})
	s := g.State
	s.TermLimited = s.Players[1:]
	s.ElectionTracker = 2
	e := &phase.Election{}
	next, err := e.Execute(g)
	if err != nil {
		t.Fatal(err)
	}
	if next != e || s.ElectionTracker != 0 || len(s.TermLimited) != 0 || g.Board.Liberal.Count != 1 {
		t.Fatalf("tracker %d, term limited %v, liberal %d", s.ElectionTracker, s.TermLimited, g.Board.Liberal.Count)
	}
	if s.PresidentCandidate != s.Players[0] {
		t.Fatalf("candidate should retry, got %s", s.PresidentCandidate)
	}
}

func TestMarkedPlayerDiesAfterThreeFascistPolicies(t *testing.T) {
	d := &gametest.Scripted{Ballot: nein}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), deckOf(), d)
	s := g.State
	marked := s.Players[3]
	s.Mark(marked, 1)
	e := &phase.Election{}

	g.Board.Fascist.Count = 3
	if _, err := e.Execute(g); err != nil {
		t.Fatal(err)
	}
	if marked.Dead {
		t.Fatalf("executed after two fascist policies")
	}
	g.Board.Fascist.Count = 4
	if _, err := e.Execute(g); err != nil {
		t.Fatal(err)
	}
	if !marked.Dead || s.IsActive(marked) || s.MarkedForExecution != nil {
		t.Fatalf("mark not carried out")
	}
}

func TestMarkedHitlerEndsGame(t *testing.T) {
	g := gametest.NewGame(t, game.Rules{Communists: true}, gametest.Roles(4, 1, 1), deckOf(), &gametest.Scripted{})
	s := g.State
	s.Mark(s.Players[5], 0)
	g.Board.Fascist.Count = 3
	next, err := (&phase.Election{}).Execute(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := next.(*phase.GameOver); !ok {
		t.Fatalf("next = %T, want GameOver", next)
	}
	if s.Winner != game.WinnerLiberalAndCommunist {
		t.Fatalf("winner = %s", s.Winner)
	}
}

func TestHitlerElectedChancellorWins(t *testing.T) {
	d := &gametest.Scripted{Nominate: func(v game.View, eligible []*game.Player) *game.Player {
		for _, p := range eligible {
			if p.IsHitler() {
				return p
			}
		}
		return eligible[0]
	}}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), deckOf(), d)
	g.Board.Fascist.Count = 3
	pile := len(g.Board.DrawPile)
	next, err := (&phase.Election{}).Execute(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := next.(*phase.GameOver); !ok {
		t.Fatalf("next = %T, want GameOver", next)
	}
	s := g.State
	if s.Winner != game.WinnerFascist || !s.GameOver {
		t.Fatalf("winner = %q over=%v", s.Winner, s.GameOver)
	}
	if s.Chancellor != nil || len(g.Board.DrawPile) != pile {
		t.Fatalf("a legislative session ran")
	}
}

func TestHitlerElectedEarlyGoesToLegislative(t *testing.T) {
	d := &gametest.Scripted{Nominate: func(v game.View, eligible []*game.Player) *game.Player {
		return eligible[len(eligible)-1]
	}}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), deckOf(), d)
	g.Board.Fascist.Count = 2
	next, err := (&phase.Election{}).Execute(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := next.(*phase.Legislative); !ok {
		t.Fatalf("next = %T, want Legislative", next)
	}
	if !g.State.Chancellor.IsHitler() || g.State.President != g.State.Players[0] {
		t.Fatalf("government not installed")
	}
}

func TestGameOverIsIdempotent(t *testing.T) {
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), deckOf(), &gametest.Scripted{})
	g.State.Declare(game.WinnerLiberal)
	over := &phase.GameOver{}
	for i := 0; i < 3; i++ {
		next, err := over.Execute(g)
		if err != nil || next != over {
			t.Fatalf("GameOver.Execute = %v, %v", next, err)
		}
	}
	if !g.State.GameOver || g.State.Winner != game.WinnerLiberal {
		t.Fatalf("state changed: %+v", g.State.Winner)
	}
}

func seatGovernment(g *game.Game) {
	s := g.State
	s.President = s.Players[0]
	s.Chancellor = s.Players[1]
}

func TestLegislativeEnactsAndRunsPower(t *testing.T) {
	deck := deckOf(policy.Fascist, policy.Liberal, policy.Liberal)
	g := gametest.NewGame(t, game.Rules{Communists: true}, gametest.Roles(4, 1, 1), deck, &gametest.Scripted{})
	seatGovernment(g)
	g.Board.Fascist.Count = 2
	next, err := (&phase.Legislative{Powers: power.Default()}).Execute(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := next.(*phase.Election); !ok {
		t.Fatalf("next = %T, want Election", next)
	}
	s := g.State
	last := s.Enactments[len(s.Enactments)-1]
	if last.Policy != policy.Fascist || last.Power != board.PolicyPeek {
		t.Fatalf("enactment = %+v", last)
	}
	if len(s.TermLimited) != 1 || s.TermLimited[0] != s.Players[1] {
		t.Fatalf("term limited = %v", s.TermLimited)
	}
	if s.LastDiscarded != policy.Liberal || len(g.Board.DiscardPile) != 2 {
		t.Fatalf("discards = %v", g.Board.DiscardPile)
	}
	if s.PresidentCandidate != s.Players[1] {
		t.Fatalf("candidate = %s, want p1", s.PresidentCandidate)
	}
}

func TestLegislativeRemembersChancellorDiscard(t *testing.T) {
	d := &gametest.Scripted{
		Filter: func(_ game.View, drawn []policy.Policy) ([]policy.Policy, policy.Policy) {
			return drawn[1:], drawn[0]
		},
	}
	deck := deckOf(policy.Liberal, policy.Communist, policy.Fascist)
	g := gametest.NewGame(t, game.Rules{Communists: true}, gametest.Roles(4, 1, 1), deck, d)
	seatGovernment(g)
	if _, err := (&phase.Legislative{}).Execute(g); err != nil {
		t.Fatal(err)
	}
	if g.Board.Communist.Count != 1 {
		t.Fatalf("communist track = %d, want 1", g.Board.Communist.Count)
	}
	if g.State.LastDiscarded != policy.Fascist {
		t.Fatalf("last discarded = %s, want fascist", g.State.LastDiscarded)
	}
}

func TestLegislativeExecutingHitlerEndsGame(t *testing.T) {
	d := &gametest.Scripted{Target: func(_ game.View, _ game.Purpose, eligible []*game.Player) *game.Player {
		for _, p := range eligible {
			if p.IsHitler() {
				return p
			}
		}
		return eligible[0]
	}}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), deckOf(policy.Fascist, policy.Liberal, policy.Liberal), d)
	seatGovernment(g)
	g.Board.Fascist.Count = 3
	next, err := (&phase.Legislative{}).Execute(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := next.(*phase.GameOver); !ok {
		t.Fatalf("next = %T, want GameOver", next)
	}
	if g.State.Winner != game.WinnerLiberal {
		t.Fatalf("winner = %s", g.State.Winner)
	}
}

func TestAcceptedVetoDiscardsAgenda(t *testing.T) {
	yes := func(game.View, []policy.Policy) bool { return true }
	d := &gametest.Scripted{Veto: yes, Accept: yes}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), deckOf(policy.Fascist, policy.Fascist, policy.Liberal), d)
	seatGovernment(g)
	g.Board.Fascist.Count = 5
	g.Board.VetoAvailable = true
	next, err := (&phase.Legislative{}).Execute(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := next.(*phase.Election); !ok {
		t.Fatalf("next = %T, want Election", next)
	}
	s := g.State
	if len(s.Enactments) != 0 || g.Board.Fascist.Count != 5 {
		t.Fatalf("vetoed agenda was enacted")
	}
	if len(g.Board.DiscardPile) != 3 || s.ElectionTracker != 1 {
		t.Fatalf("discard %v, tracker %d", g.Board.DiscardPile, s.ElectionTracker)
	}
	if s.PresidentCandidate != s.Players[1] {
		t.Fatalf("candidate = %s, want p1", s.PresidentCandidate)
	}
}

func TestAcceptedVetoAtTrackerTwoEnactsChaos(t *testing.T) {
	yes := func(game.View, []policy.Policy) bool { return true }
	d := &gametest.Scripted{Veto: yes, Accept: yes}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), deckOf(policy.Fascist, policy.Fascist, policy.Fascist), d)
	seatGovernment(g)
	s := g.State
	g.Board.Fascist.Count = 5
	g.Board.VetoAvailable = true
	s.ElectionTracker = 2
	s.TermLimited = []*game.Player{s.Players[2], s.Players[3]}

	next, err := (&phase.Legislative{}).Execute(g)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := next.(*phase.Election); !ok {
		t.Fatalf("next = %T, want Election", next)
	}
	if len(s.Enactments) != 1 || !s.Enactments[0].Chaos || s.Enactments[0].Policy != policy.Liberal {
		t.Fatalf("enactments = %+v", s.Enactments)
	}
	if s.ElectionTracker != 0 || len(s.TermLimited) != 0 {
		t.Fatalf("tracker %d, term limited %v", s.ElectionTracker, s.TermLimited)
	}
	if g.Board.Liberal.Count != 1 || g.Board.Fascist.Count != 5 {
		t.Fatalf("liberal %d, fascist %d", g.Board.Liberal.Count, g.Board.Fascist.Count)
	}
	if s.PresidentCandidate != s.Players[1] || s.GameOver {
		t.Fatalf("candidate = %s, game over %t", s.PresidentCandidate, s.GameOver)
	}
}

func TestRejectedVetoStillEnacts(t *testing.T) {
	d := &gametest.Scripted{Veto: func(game.View, []policy.Policy) bool { return true }}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), deckOf(policy.Liberal, policy.Fascist, policy.Fascist), d)
	seatGovernment(g)
	g.Board.Fascist.Count = 5
	g.Board.VetoAvailable = true
	if _, err := (&phase.Legislative{}).Execute(g); err != nil {
		t.Fatal(err)
	}
	if g.Board.Liberal.Count != 1 {
		t.Fatalf("liberal track = %d, want 1", g.Board.Liberal.Count)
	}
}

func TestSpecialElectionResumesRotation(t *testing.T) {
	d := &gametest.Scripted{Target: func(v game.View, purpose game.Purpose, eligible []*game.Player) *game.Player {
		if purpose == game.PurposeSpecialElection {
			return v.State.Players[5]
		}
		return eligible[0]
	}}
	g := gametest.NewGame(t, game.Rules{Communists: true}, gametest.Roles(5, 2, 1), deckOf(policy.Fascist, policy.Liberal, policy.Liberal), d)
	seatGovernment(g)
	g.Board.Fascist.Count = 2
	s := g.State

	next, err := (&phase.Legislative{}).Execute(g)
	if err != nil {
		t.Fatal(err)
	}
	if s.PresidentCandidate != s.Players[5] || !s.SpecialElection {
		t.Fatalf("special election not called: candidate %s", s.PresidentCandidate)
	}
	if next, err = next.Execute(g); err != nil {
		t.Fatal(err)
	}
	if _, ok := next.(*phase.Legislative); !ok {
		t.Fatalf("next = %T, want Legislative", next)
	}
	if s.President != s.Players[5] {
		t.Fatalf("president = %s, want p5", s.President)
	}
	if _, err = next.Execute(g); err != nil {
		t.Fatal(err)
	}
	if s.PresidentCandidate != s.Players[1] || s.SpecialElection {
		t.Fatalf("rotation resumed at %s, want p1", s.PresidentCandidate)
	}
}

func TestMachineRunsToGameOver(t *testing.T) {
	run := func(seed int64) (*phase.Machine, game.Winner) {
		seats := make([]game.Seat, 7)
		for i := range seats {
			seats[i] = game.Seat{Decider: &gametest.Scripted{}}
		}
		g, err := game.New(game.Rules{Players: 7, Communists: true}, seats, game.WithRand(rand.New(rand.NewSource(seed))))
		if err != nil {
			t.Fatal(err)
		}
		m := phase.NewMachine(g)
		winner, err := m.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return m, winner
	}
	m, winner := run(3)
	if winner == game.WinnerNone || !m.Done() || !m.Game().State.GameOver {
		t.Fatalf("game did not finish: winner %q", winner)
	}
	again, winnerAgain := run(3)
	if winner != winnerAgain || m.Steps() != again.Steps() {
		t.Fatalf("identical seeds diverged: %s/%d vs %s/%d", winner, m.Steps(), winnerAgain, again.Steps())
	}
}

func TestMachineObserverAndCancel(t *testing.T) {
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), nil, &gametest.Scripted{})
	var seen []string
	m := phase.NewMachine(g, phase.WithObserver(func(from, _ phase.Phase) { seen = append(seen, from.Name()) }))
	if _, err := m.Step(); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 1 || seen[0] != "setup" || m.Current().Name() != "election" {
		t.Fatalf("seen %v, current %s", seen, m.Current().Name())
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMachineStepLimit(t *testing.T) {
	d := &gametest.Scripted{Ballot: nein}
	g := gametest.NewGame(t, game.Rules{}, gametest.Roles(4, 1, 0), nil, d)
	m := phase.NewMachine(g, phase.WithStepLimit(2))
	if _, err := m.Run(context.Background()); !errors.Is(err, phase.ErrStepLimit) {
		t.Fatalf("expected ErrStepLimit, got %v", err)
	}
}
