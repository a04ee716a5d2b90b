package strategy

import (
	"math/rand"

	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

// Partisan plays for its own party using what it knows about the table:
// setup knowledge, investigations, bugging and public confessions. Anything
// it cannot judge falls back to a coin weighted by the odds below.
type Partisan struct {
	rng *rand.Rand
}

const unknownVoteOdds = 0.7

var _ game.Decider = (*Partisan)(nil)

// NewPartisan returns a partisan decider drawing from rng.
func NewPartisan(rng *rand.Rand) *Partisan {
	return &Partisan{rng: rng}
}

// Favours maps a card to the party it advances. Emergency cards favour
// nobody.
func Favours(p policy.Policy) role.Party {
	switch p {
	case policy.Liberal, policy.SocialDemocratic:
		return role.PartyLiberal
	case policy.Fascist, policy.AntiCommunist:
		return role.PartyFascist
	case policy.Communist, policy.AntiFascist:
		return role.PartyCommunist
	}
	return role.PartyNone
}

func score(p policy.Policy, party role.Party) int {
	switch Favours(p) {
	case role.PartyNone:
		return 0
	case party:
		return 1
	}
	return -1
}

// known returns the party v.Self believes other belongs to.
func known(v game.View, other *game.Player) role.Party {
	self := v.Self
	if other == self {
		return self.Party()
	}
	if p, ok := self.KnownAffiliations[other.ID]; ok {
		return p
	}
	for _, id := range self.KnownCommunists {
		if id == other.ID {
			return role.PartyCommunist
		}
	}
	if v.State != nil {
		if p, ok := v.State.RevealedAffiliations[other.ID]; ok {
			return p
		}
	}
	return role.PartyNone
}

func isAlly(v game.View, p *game.Player) bool {
	return known(v, p) == v.Self.Party()
}

func isEnemy(v game.View, p *game.Player) bool {
	k := known(v, p)
	return k != role.PartyNone && k != v.Self.Party()
}

func (s *Partisan) pick(players []*game.Player) *game.Player {
	if len(players) == 0 {
		return nil
	}
	return players[s.rng.Intn(len(players))]
}

// prefer picks from the first non-empty filtered subset, falling back to
// any player.
func (s *Partisan) prefer(players []*game.Player, filters ...func(*game.Player) bool) *game.Player {
	for _, keep := range filters {
		var subset []*game.Player
		for _, p := range players {
			if keep(p) {
				subset = append(subset, p)
			}
		}
		if len(subset) > 0 {
			return s.pick(subset)
		}
	}
	return s.pick(players)
}

func (s *Partisan) NominateChancellor(v game.View, eligible []*game.Player) *game.Player {
	return s.prefer(eligible,
		func(p *game.Player) bool { return isAlly(v, p) },
		func(p *game.Player) bool { return !isEnemy(v, p) },
	)
}

func (s *Partisan) FilterPolicies(v game.View, drawn []policy.Policy) ([]policy.Policy, policy.Policy) {
	party := v.Self.Party()
	worst := 0
	for i, p := range drawn {
		if score(p, party) <= score(drawn[worst], party) {
			worst = i
		}
	}
	return discardAt(drawn, worst)
}

func (s *Partisan) ChoosePolicy(v game.View, kept []policy.Policy) (policy.Policy, policy.Policy) {
	party := v.Self.Party()
	if score(kept[1], party) > score(kept[0], party) {
		return kept[1], kept[0]
	}
	return kept[0], kept[1]
}

func (s *Partisan) Vote(v game.View, president, chancellor *game.Player) bool {
	if isEnemy(v, president) || isEnemy(v, chancellor) {
		return false
	}
	if isAlly(v, president) || isAlly(v, chancellor) {
		return true
	}
	return s.rng.Float64() < unknownVoteOdds
}

func (s *Partisan) ProposeVeto(v game.View, kept []policy.Policy) bool {
	return !helps(v, kept)
}

func (s *Partisan) AcceptVeto(v game.View, kept []policy.Policy) bool {
	return !helps(v, kept)
}

func helps(v game.View, kept []policy.Policy) bool {
	party := v.Self.Party()
	for _, p := range kept {
		if score(p, party) >= 0 {
			return true
		}
	}
	return false
}

func (s *Partisan) ChooseTarget(v game.View, purpose game.Purpose, eligible []*game.Player) *game.Player {
	enemy := func(p *game.Player) bool { return isEnemy(v, p) }
	notAlly := func(p *game.Player) bool { return !isAlly(v, p) }
	unknown := func(p *game.Player) bool { return known(v, p) == role.PartyNone }
	switch purpose {
	case game.PurposeSpecialElection:
		return s.prefer(eligible, func(p *game.Player) bool { return isAlly(v, p) }, notAlly)
	case game.PurposeInvestigate, game.PurposeBug:
		return s.prefer(eligible, unknown)
	case game.PurposeRadicalize:
		return s.prefer(eligible, func(p *game.Player) bool { return known(v, p) == role.PartyLiberal }, unknown)
	default:
		return s.prefer(eligible, enemy, notAlly)
	}
}

func (s *Partisan) PropagandaDecision(v game.View, top policy.Policy) bool {
	return score(top, v.Self.Party()) < 0
}

func (s *Partisan) ChooseRevealer(v game.View, eligible []*game.Player) *game.Player {
	return s.prefer(eligible, func(p *game.Player) bool { return isAlly(v, p) })
}

func (s *Partisan) PardonDecision(v game.View, marked *game.Player) bool {
	return isAlly(v, marked)
}

func (s *Partisan) SocialDemocraticRemoval(v game.View) role.Party {
	switch v.Self.Party() {
	case role.PartyFascist:
		return role.PartyCommunist
	case role.PartyCommunist:
		return role.PartyFascist
	}
	if v.Board != nil && v.Board.Communist.Count > v.Board.Fascist.Count {
		return role.PartyCommunist
	}
	return role.PartyFascist
}
