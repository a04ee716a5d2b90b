package game

import (
	"github.com/kingrea/shxl/internal/board"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

// Purpose tells a decider why it is choosing a target.
type Purpose string

const (
	PurposeKill            Purpose = "kill"
	PurposeInvestigate     Purpose = "investigate"
	PurposeMark            Purpose = "mark"
	PurposeSpecialElection Purpose = "special_election"
	PurposeRadicalize      Purpose = "radicalize"
	PurposeBug             Purpose = "bug"
	PurposeImpeach         Purpose = "impeach"
)

// View is what a decider may consult while deciding. Deciders must treat it
// as read-only.
type View struct {
	Self  *Player
	State *State
	Board *board.Board
	Rules Rules
}

// Decider is the capability a player supplies to the engine. Calls are
// synchronous; a remote player buffers its answer before the engine asks.
type Decider interface {
	// NominateChancellor may return nil to decline.
	NominateChancellor(v View, eligible []*Player) *Player
	FilterPolicies(v View, drawn []policy.Policy) (kept []policy.Policy, discarded policy.Policy)
	ChoosePolicy(v View, kept []policy.Policy) (enacted, discarded policy.Policy)
	Vote(v View, president, chancellor *Player) bool
	ProposeVeto(v View, kept []policy.Policy) bool
	AcceptVeto(v View, kept []policy.Policy) bool
	ChooseTarget(v View, purpose Purpose, eligible []*Player) *Player
	PropagandaDecision(v View, top policy.Policy) bool
	ChooseRevealer(v View, eligible []*Player) *Player
	PardonDecision(v View, marked *Player) bool
	SocialDemocraticRemoval(v View) role.Party
}
