package board

import (
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

// EnactOptions carries the rule flags that change how a card resolves.
type EnactOptions struct {
	// Chaos cards move tracks but never grant powers.
	Chaos           bool
	EmergencyPowers bool
	AntiPolicies    bool
	// Removal picks the track a socialdemocratic card cuts. When nil the
	// longer of fascist and communist is cut, ties going to fascist.
	Removal func() role.Party
}

// Enact places p on the board and returns the power it unlocks, or "".
func (b *Board) Enact(p policy.Policy, opts EnactOptions) string {
	b.Enacted = append(b.Enacted, p)
	power := ""
	switch p {
	case policy.Liberal:
		b.Liberal.Count++
	case policy.Fascist:
		b.Fascist.Count++
		if !opts.Chaos {
			power = b.nextPower(role.PartyFascist)
		}
	case policy.Communist:
		b.Communist.Count++
		if !opts.Chaos {
			power = b.nextPower(role.PartyCommunist)
		}
	case policy.AntiFascist:
		if opts.AntiPolicies {
			b.Communist.Count++
			b.Fascist.decrement()
			b.BlockFascist = true
		}
	case policy.AntiCommunist:
		if opts.AntiPolicies {
			b.Fascist.Count++
			b.Communist.decrement()
			b.BlockCommunist = true
		}
	case policy.SocialDemocratic:
		if opts.AntiPolicies {
			b.Liberal.Count++
			b.cut(b.removalChoice(opts.Removal))
		}
	case policy.Article48:
		if opts.EmergencyPowers && !opts.Chaos {
			power = b.pick(Article48Powers)
		}
	case policy.EnablingAct:
		if opts.EmergencyPowers && !opts.Chaos {
			power = b.pick(EnablingActPowers)
		}
	}
	b.VetoAvailable = b.Fascist.Count >= VetoThreshold
	return power
}

// nextPower looks up the power for the track's new position. A pending block
// is consumed instead.
func (b *Board) nextPower(track role.Party) string {
	switch track {
	case role.PartyFascist:
		if b.BlockFascist {
			b.BlockFascist = false
			return ""
		}
		return b.PowerAt(track, b.Fascist.Count)
	case role.PartyCommunist:
		if b.BlockCommunist {
			b.BlockCommunist = false
			return ""
		}
		return b.PowerAt(track, b.Communist.Count)
	}
	return ""
}

func (b *Board) removalChoice(choose func() role.Party) role.Party {
	if choose != nil {
		if p := choose(); p == role.PartyFascist || p == role.PartyCommunist {
			return p
		}
	}
	if b.Communist.Count > b.Fascist.Count {
		return role.PartyCommunist
	}
	return role.PartyFascist
}

func (b *Board) cut(track role.Party) {
	if track == role.PartyCommunist {
		b.Communist.decrement()
		b.BlockCommunist = true
		return
	}
	b.Fascist.decrement()
	b.BlockFascist = true
}

func (b *Board) pick(powers []string) string {
	return powers[b.rng.Intn(len(powers))]
}
