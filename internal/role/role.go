// Package role models secret roles, their party membership, and the
// handbook distribution used to deal them.
package role

import (
	"fmt"
	"math/rand"
	"time"
)

// Party is the faction a role reports for every affiliation check.
type Party string

const (
	PartyNone      Party = ""
	PartyLiberal   Party = "liberal"
	PartyFascist   Party = "fascist"
	PartyCommunist Party = "communist"
)

// Role is a secret role tag.
type Role string

const (
	Liberal   Role = "liberal"
	Fascist   Role = "fascist"
	Hitler    Role = "hitler"
	Communist Role = "communist"
)

// Party returns the role's party membership. Hitler reports fascist.
func (r Role) Party() Party {
	switch r {
	case Liberal:
		return PartyLiberal
	case Fascist, Hitler:
		return PartyFascist
	case Communist:
		return PartyCommunist
	default:
		return PartyNone
	}
}

// IsHitler reports whether r is the Hitler role.
func (r Role) IsHitler() bool {
	return r == Hitler
}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// MinPlayers and MaxPlayers bound the handbook table.
const (
	MinPlayers = 6
	MaxPlayers = 16
)

// Counts is the number of each role dealt for one game.
type Counts struct {
	Liberal   int
	Fascist   int
	Communist int
	Hitler    int
}

// Total returns the number of roles.
func (c Counts) Total() int {
	return c.Liberal + c.Fascist + c.Communist + c.Hitler
}

type split struct{ liberal, fascist, communist int }

var withCommunists = map[int]split{
	6:  {3, 1, 1},
	7:  {4, 1, 1},
	8:  {4, 2, 1},
	9:  {4, 2, 2},
	10: {5, 2, 2},
	11: {5, 3, 2},
	12: {6, 3, 2},
	13: {6, 3, 3},
	14: {7, 3, 3},
	15: {7, 4, 3},
	16: {7, 4, 4},
}

var withoutCommunists = map[int]split{
	6:  {4, 1, 0},
	7:  {4, 2, 0},
	8:  {5, 2, 0},
	9:  {5, 3, 0},
	10: {6, 3, 0},
	11: {6, 4, 0},
	12: {7, 4, 0},
	13: {7, 5, 0},
	14: {8, 5, 0},
	15: {8, 6, 0},
	16: {9, 6, 0},
}

// Distribution returns the role counts for a player count. Counts outside
// the handbook range are clamped to it.
func Distribution(players int, communists bool) Counts {
	players = max(MinPlayers, min(MaxPlayers, players))
	table := withoutCommunists
	if communists {
		table = withCommunists
	}
	s := table[players]
	return Counts{Liberal: s.liberal, Fascist: s.fascist, Communist: s.communist, Hitler: 1}
}

// Deal returns a shuffled role slice for players seats. It fails when the
// player count is outside the handbook range.
func Deal(players int, communists bool, rng *rand.Rand) ([]Role, error) {
	if players < MinPlayers || players > MaxPlayers {
		return nil, fmt.Errorf("role: player count %d outside %d-%d", players, MinPlayers, MaxPlayers)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	counts := Distribution(players, communists)
	roles := make([]Role, 0, counts.Total())
	for i := 0; i < counts.Liberal; i++ {
		roles = append(roles, Liberal)
	}
	for i := 0; i < counts.Fascist; i++ {
		roles = append(roles, Fascist)
	}
	roles = append(roles, Hitler)
	for i := 0; i < counts.Communist; i++ {
		roles = append(roles, Communist)
	}
	rng.Shuffle(len(roles), func(i, j int) { roles[i], roles[j] = roles[j], roles[i] })
	return roles, nil
}
