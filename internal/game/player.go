package game

import "github.com/kingrea/shxl/internal/role"

// Player is one seat at the table. Role is mutable: radicalization rewrites
// it. Players are never removed from State.Players, only marked dead.
type Player struct {
	ID   string
	Name string
	Seat int
	Role role.Role
	Dead bool

	// KnownAffiliations maps player IDs to the party this player has
	// learned for them.
	KnownAffiliations map[string]role.Party
	// KnownCommunists lists communist player IDs this player is aware of.
	KnownCommunists []string

	Decider Decider
}

// Party returns the player's current party membership.
func (p *Player) Party() role.Party {
	return p.Role.Party()
}

// IsHitler reports whether the player holds the Hitler role.
func (p *Player) IsHitler() bool {
	return p.Role.IsHitler()
}

// Learn records that this player knows other's party.
func (p *Player) Learn(other *Player) {
	if p.KnownAffiliations == nil {
		p.KnownAffiliations = make(map[string]role.Party)
	}
	p.KnownAffiliations[other.ID] = other.Party()
}

func (p *Player) String() string {
	if p == nil {
		return "<nobody>"
	}
	return p.Name
}
