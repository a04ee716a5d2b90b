package board

import "github.com/kingrea/shxl/internal/role"

// Power names returned by Enact and understood by the power registry.
const (
	InvestigateLoyalty = "investigate_loyalty"
	SpecialElection    = "special_election"
	PolicyPeek         = "policy_peek"
	Execution          = "execution"
	Confession         = "confession"
	Bugging            = "bugging"
	FiveYearPlan       = "five_year_plan"
	Congress           = "congress"
	Radicalization     = "radicalization"

	Propaganda          = "propaganda"
	Impeachment         = "impeachment"
	MarkedForExecution  = "marked_for_execution"
	PolicyPeekEmergency = "policy_peek_emergency"
	ExecutionEmergency  = "execution_emergency"
	Pardon              = "pardon"

	ChancellorPropaganda         = "chancellor_propaganda"
	ChancellorImpeachment        = "chancellor_impeachment"
	ChancellorMarkedForExecution = "chancellor_marked_for_execution"
	ChancellorPolicyPeek         = "chancellor_policy_peek"
	ChancellorExecution          = "chancellor_execution"
	VoteOfNoConfidence           = "vote_of_no_confidence"
)

// Article48Powers are drawn at random when an article48 card is enacted.
var Article48Powers = []string{
	Propaganda,
	Impeachment,
	MarkedForExecution,
	PolicyPeekEmergency,
	ExecutionEmergency,
	Pardon,
}

// EnablingActPowers are drawn at random when an enablingact card is enacted.
var EnablingActPowers = []string{
	ChancellorPropaganda,
	ChancellorImpeachment,
	ChancellorMarkedForExecution,
	ChancellorPolicyPeek,
	ChancellorExecution,
	VoteOfNoConfidence,
}

// IsExecution reports whether name kills its target.
func IsExecution(name string) bool {
	switch name {
	case Execution, ExecutionEmergency, ChancellorExecution:
		return true
	}
	return false
}

// FascistPowers returns the fascist track's power slots for a player count.
// Slot i holds the power granted when the track reaches position i+1; an
// empty string is a slot without a power.
func FascistPowers(players int) []string {
	switch {
	case players < 8:
		return []string{"", "", PolicyPeek, Execution, Execution}
	case players < 11:
		return []string{"", InvestigateLoyalty, SpecialElection, Execution, Execution}
	default:
		return []string{InvestigateLoyalty, InvestigateLoyalty, SpecialElection, Execution, Execution}
	}
}

// CommunistPowers returns the communist track's power slots.
func CommunistPowers(players int, communists bool) []string {
	switch {
	case !communists:
		return nil
	case players < 9:
		return []string{Bugging, Radicalization, FiveYearPlan, Congress}
	case players < 11:
		return []string{Bugging, Radicalization, FiveYearPlan, Congress, Confession}
	default:
		return []string{"", Radicalization, FiveYearPlan, Radicalization, Confession}
	}
}

// PowerAt is the pure track lookup. Positions are 1-indexed; anything off
// the table yields no power.
func (b *Board) PowerAt(track role.Party, position int) string {
	var slots []string
	switch track {
	case role.PartyFascist:
		slots = b.fascistPowers
	case role.PartyCommunist:
		slots = b.communistPowers
	}
	if position < 1 || position > len(slots) {
		return ""
	}
	return slots[position-1]
}
