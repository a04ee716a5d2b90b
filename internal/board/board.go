// Package board owns the policy piles and the three progress tracks.
package board

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

// VetoThreshold is the fascist track position that unlocks the veto.
const VetoThreshold = 5

const (
	liberalTrackSize = 5
	fascistTrackSize = 6
)

// ErrDeckExhausted is returned when draw and discard piles together hold
// fewer cards than requested.
var ErrDeckExhausted = errors.New("board: deck exhausted")

// Track is a per-faction counter and the count that wins the game.
type Track struct {
	Count int
	Size  int
}

// Full reports whether the track has reached its winning size.
func (t Track) Full() bool {
	return t.Size > 0 && t.Count >= t.Size
}

func (t *Track) decrement() {
	if t.Count > 0 {
		t.Count--
	}
}

// Board is the shared table state. DrawPile[0] is the top card.
type Board struct {
	DrawPile    []policy.Policy
	DiscardPile []policy.Policy
	Enacted     []policy.Policy

	Liberal   Track
	Fascist   Track
	Communist Track

	VetoAvailable  bool
	BlockFascist   bool
	BlockCommunist bool

	fascistPowers   []string
	communistPowers []string
	rng             *rand.Rand
}

// New builds a board for players seats around the given draw pile.
func New(players int, communists bool, deck []policy.Policy, rng *rand.Rand) *Board {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	b := &Board{
		DrawPile:        append([]policy.Policy(nil), deck...),
		Liberal:         Track{Size: liberalTrackSize},
		Fascist:         Track{Size: fascistTrackSize},
		Communist:       Track{Size: communistTrackSize(players, communists)},
		fascistPowers:   FascistPowers(players),
		communistPowers: CommunistPowers(players, communists),
		rng:             rng,
	}
	return b
}

func communistTrackSize(players int, communists bool) int {
	switch {
	case !communists:
		return 0
	case players < 9:
		return 5
	default:
		return 6
	}
}

// Supply is the number of cards available to Draw.
func (b *Board) Supply() int {
	return len(b.DrawPile) + len(b.DiscardPile)
}

// Draw removes and returns the top n cards. When the draw pile runs short the
// remaining cards are taken first, then the discard pile is shuffled into a
// new draw pile and the rest come from it. The discard pile is left empty in
// that case. Callers must ensure Supply() >= n.
func (b *Board) Draw(n int) ([]policy.Policy, error) {
	if n < 0 {
		return nil, fmt.Errorf("board: draw %d: negative count", n)
	}
	if n > b.Supply() {
		return nil, fmt.Errorf("board: draw %d of %d: %w", n, b.Supply(), ErrDeckExhausted)
	}
	if n <= len(b.DrawPile) {
		drawn := append([]policy.Policy(nil), b.DrawPile[:n]...)
		b.DrawPile = b.DrawPile[n:]
		return drawn, nil
	}
	drawn := append([]policy.Policy(nil), b.DrawPile...)
	b.DrawPile = b.DiscardPile
	b.DiscardPile = nil
	b.Shuffle()
	rest := n - len(drawn)
	drawn = append(drawn, b.DrawPile[:rest]...)
	b.DrawPile = b.DrawPile[rest:]
	return drawn, nil
}

// Discard appends cards to the discard pile.
func (b *Board) Discard(cards ...policy.Policy) {
	b.DiscardPile = append(b.DiscardPile, cards...)
}

// Peek returns a copy of up to n cards from the top of the draw pile.
func (b *Board) Peek(n int) []policy.Policy {
	n = min(n, len(b.DrawPile))
	return append([]policy.Policy(nil), b.DrawPile[:n]...)
}

// TakeTop removes the top card. ok is false on an empty pile.
func (b *Board) TakeTop() (policy.Policy, bool) {
	if len(b.DrawPile) == 0 {
		return "", false
	}
	top := b.DrawPile[0]
	b.DrawPile = b.DrawPile[1:]
	return top, true
}

// Prepend places cards on top of the draw pile in the given order.
func (b *Board) Prepend(cards ...policy.Policy) {
	pile := make([]policy.Policy, 0, len(cards)+len(b.DrawPile))
	pile = append(pile, cards...)
	b.DrawPile = append(pile, b.DrawPile...)
}

// Shuffle permutes the draw pile.
func (b *Board) Shuffle() {
	b.rng.Shuffle(len(b.DrawPile), func(i, j int) {
		b.DrawPile[i], b.DrawPile[j] = b.DrawPile[j], b.DrawPile[i]
	})
}

// Track returns the track for a party. Unknown parties get a zero track.
func (b *Board) Track(p role.Party) Track {
	switch p {
	case role.PartyLiberal:
		return b.Liberal
	case role.PartyFascist:
		return b.Fascist
	case role.PartyCommunist:
		return b.Communist
	}
	return Track{}
}

// PolicyWinner returns the party whose track is full, or PartyNone. Tracks
// are checked liberal, fascist, communist.
func (b *Board) PolicyWinner() role.Party {
	switch {
	case b.Liberal.Full():
		return role.PartyLiberal
	case b.Fascist.Full():
		return role.PartyFascist
	case b.Communist.Full():
		return role.PartyCommunist
	}
	return role.PartyNone
}
