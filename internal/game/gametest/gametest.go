// Package gametest provides scripted deciders and table builders for tests.
package gametest

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

// Scripted is a Decider whose answers come from optional hooks. Unset hooks
// fall back to the first option offered, ja votes, no vetoes and no pardons.
type Scripted struct {
	Nominate  func(v game.View, eligible []*game.Player) *game.Player
	Filter    func(v game.View, drawn []policy.Policy) ([]policy.Policy, policy.Policy)
	Choose    func(v game.View, kept []policy.Policy) (policy.Policy, policy.Policy)
	Ballot    func(v game.View, president, chancellor *game.Player) bool
	Veto      func(v game.View, kept []policy.Policy) bool
	Accept    func(v game.View, kept []policy.Policy) bool
	Target    func(v game.View, purpose game.Purpose, eligible []*game.Player) *game.Player
	Propagate func(v game.View, top policy.Policy) bool
	Revealer  func(v game.View, eligible []*game.Player) *game.Player
	Pardon    func(v game.View, marked *game.Player) bool
	Removal   func(v game.View) role.Party

	// Purposes records every ChooseTarget purpose in call order.
	Purposes []game.Purpose
}

var _ game.Decider = (*Scripted)(nil)

func (s *Scripted) NominateChancellor(v game.View, eligible []*game.Player) *game.Player {
	if s.Nominate != nil {
		return s.Nominate(v, eligible)
	}
	return eligible[0]
}

func (s *Scripted) FilterPolicies(v game.View, drawn []policy.Policy) ([]policy.Policy, policy.Policy) {
	if s.Filter != nil {
		return s.Filter(v, drawn)
	}
	return drawn[:2], drawn[2]
}

func (s *Scripted) ChoosePolicy(v game.View, kept []policy.Policy) (policy.Policy, policy.Policy) {
	if s.Choose != nil {
		return s.Choose(v, kept)
	}
	return kept[0], kept[1]
}

func (s *Scripted) Vote(v game.View, president, chancellor *game.Player) bool {
	if s.Ballot != nil {
		return s.Ballot(v, president, chancellor)
	}
	return true
}

func (s *Scripted) ProposeVeto(v game.View, kept []policy.Policy) bool {
	return s.Veto != nil && s.Veto(v, kept)
}

func (s *Scripted) AcceptVeto(v game.View, kept []policy.Policy) bool {
	return s.Accept != nil && s.Accept(v, kept)
}

func (s *Scripted) ChooseTarget(v game.View, purpose game.Purpose, eligible []*game.Player) *game.Player {
	s.Purposes = append(s.Purposes, purpose)
	if s.Target != nil {
		return s.Target(v, purpose, eligible)
	}
	return eligible[0]
}

func (s *Scripted) PropagandaDecision(v game.View, top policy.Policy) bool {
	return s.Propagate != nil && s.Propagate(v, top)
}

func (s *Scripted) ChooseRevealer(v game.View, eligible []*game.Player) *game.Player {
	if s.Revealer != nil {
		return s.Revealer(v, eligible)
	}
	return eligible[0]
}

func (s *Scripted) PardonDecision(v game.View, marked *game.Player) bool {
	return s.Pardon != nil && s.Pardon(v, marked)
}

func (s *Scripted) SocialDemocraticRemoval(v game.View) role.Party {
	if s.Removal != nil {
		return s.Removal(v)
	}
	return role.PartyFascist
}

// NewGame seats len(roles) players that all share decider d. Roles are dealt
// in seat order, the deck is used as given (top first) and the first
// presidential candidate is seat 0.
func NewGame(tb testing.TB, rules game.Rules, roles []role.Role, deck []policy.Policy, d game.Decider) *game.Game {
	tb.Helper()
	rules.Players = len(roles)
	seats := make([]game.Seat, len(roles))
	for i := range seats {
		seats[i] = game.Seat{Name: fmt.Sprintf("p%d", i), Decider: d}
	}
	opts := []game.Option{game.WithRand(rand.New(rand.NewSource(1))), game.WithRoles(roles...)}
	if deck != nil {
		opts = append(opts, game.WithDeck(deck...))
	}
	g, err := game.New(rules, seats, opts...)
	if err != nil {
		tb.Fatalf("new game: %v", err)
	}
	g.State.PresidentCandidate = g.State.Players[0]
	return g
}

// Repeat returns n copies of p.
func Repeat(p policy.Policy, n int) []policy.Policy {
	out := make([]policy.Policy, n)
	for i := range out {
		out[i] = p
	}
	return out
}

// Roles builds a seat-ordered role list: l liberals, f fascists, one Hitler,
// then c communists.
func Roles(l, f, c int) []role.Role {
	var roles []role.Role
	for i := 0; i < l; i++ {
		roles = append(roles, role.Liberal)
	}
	for i := 0; i < f; i++ {
		roles = append(roles, role.Fascist)
	}
	roles = append(roles, role.Hitler)
	for i := 0; i < c; i++ {
		roles = append(roles, role.Communist)
	}
	return roles
}

// Journal records formatted log lines.
type Journal struct {
	Lines []string
}

// Info implements game.Logger.
func (j *Journal) Info(format string, args ...any) {
	j.Lines = append(j.Lines, fmt.Sprintf(format, args...))
}
