// Package strategy provides reference deciders for simulated players.
package strategy

import (
	"math/rand"

	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

// Random answers every question uniformly at random, with the odds below for
// yes/no decisions. It is not safe for concurrent use.
type Random struct {
	rng *rand.Rand
}

const (
	voteOdds       = 0.5
	vetoOdds       = 0.2
	acceptVetoOdds = 0.2
	propagandaOdds = 0.5
	pardonOdds     = 0.5
)

var _ game.Decider = (*Random)(nil)

// NewRandom returns a random decider drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (r *Random) chance(p float64) bool {
	return r.rng.Float64() < p
}

func (r *Random) pick(players []*game.Player) *game.Player {
	if len(players) == 0 {
		return nil
	}
	return players[r.rng.Intn(len(players))]
}

func (r *Random) NominateChancellor(_ game.View, eligible []*game.Player) *game.Player {
	return r.pick(eligible)
}

func (r *Random) FilterPolicies(_ game.View, drawn []policy.Policy) ([]policy.Policy, policy.Policy) {
	return discardAt(drawn, r.rng.Intn(len(drawn)))
}

func (r *Random) ChoosePolicy(_ game.View, kept []policy.Policy) (policy.Policy, policy.Policy) {
	i := r.rng.Intn(len(kept))
	return kept[i], kept[1-i]
}

func (r *Random) Vote(game.View, *game.Player, *game.Player) bool {
	return r.chance(voteOdds)
}

func (r *Random) ProposeVeto(game.View, []policy.Policy) bool {
	return r.chance(vetoOdds)
}

func (r *Random) AcceptVeto(game.View, []policy.Policy) bool {
	return r.chance(acceptVetoOdds)
}

func (r *Random) ChooseTarget(_ game.View, _ game.Purpose, eligible []*game.Player) *game.Player {
	return r.pick(eligible)
}

func (r *Random) PropagandaDecision(game.View, policy.Policy) bool {
	return r.chance(propagandaOdds)
}

func (r *Random) ChooseRevealer(_ game.View, eligible []*game.Player) *game.Player {
	return r.pick(eligible)
}

func (r *Random) PardonDecision(game.View, *game.Player) bool {
	return r.chance(pardonOdds)
}

func (r *Random) SocialDemocraticRemoval(game.View) role.Party {
	if r.chance(0.5) {
		return role.PartyFascist
	}
	return role.PartyCommunist
}

// discardAt splits drawn into the cards kept and the card at i.
func discardAt(drawn []policy.Policy, i int) ([]policy.Policy, policy.Policy) {
	kept := make([]policy.Policy, 0, len(drawn)-1)
	kept = append(kept, drawn[:i]...)
	kept = append(kept, drawn[i+1:]...)
	return kept, drawn[i]
}
