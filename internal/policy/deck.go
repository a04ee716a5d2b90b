package policy

import (
	"math/rand"
	"time"
)

const (
	communistCards     = 8
	maxEmergencyCards  = 6
	largeGamePlayers   = 8
	emergencyThreshold = 10
	communistEmergency = 13
)

// DeckOptions selects the composition of a new draw pile.
type DeckOptions struct {
	Players         int
	Communists      bool
	AntiPolicies    bool
	EmergencyPowers bool
}

// Composition describes how many of each card a deck holds before shuffling.
type Composition struct {
	Liberal     int
	Fascist     int
	Communist   int
	Article48   int
	EnablingAct int
}

// Total returns the deck size.
func (c Composition) Total() int {
	return c.Liberal + c.Fascist + c.Communist + c.Article48 + c.EnablingAct
}

// ComposeDeck computes the card counts for opts. Anti-policy substitutions do
// not change the totals; they replace one card of each base faction.
func ComposeDeck(opts DeckOptions) Composition {
	comp := Composition{Liberal: 5, Fascist: 10}
	if opts.Players >= largeGamePlayers {
		comp.Liberal = 6
		comp.Fascist = 9
	}
	if opts.Communists {
		comp.Communist = communistCards
	}
	emergency := EmergencyCount(opts)
	comp.Article48 = emergency/2 + emergency%2
	comp.EnablingAct = emergency / 2
	return comp
}

// EmergencyCount returns how many emergency cards a deck receives.
func EmergencyCount(opts DeckOptions) int {
	if !opts.EmergencyPowers || opts.Players <= emergencyThreshold {
		return 0
	}
	count := min(opts.Players-emergencyThreshold, maxEmergencyCards)
	if opts.Communists && opts.Players > communistEmergency {
		count = min((opts.Players-communistEmergency)*2, maxEmergencyCards)
	}
	return count
}

// NewDeck builds and shuffles the initial draw pile. Index 0 is the top card.
//
// When anti-policies are enabled (they require communists) the first fascist
// card becomes anticommunist, the first communist card becomes antifascist and
// the first liberal card becomes socialdemocratic, in that order and before
// emergency cards are appended. A nil rng falls back to a time-seeded source.
func NewDeck(opts DeckOptions, rng *rand.Rand) []Policy {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	comp := ComposeDeck(opts)
	deck := make([]Policy, 0, comp.Total())
	deck = appendN(deck, Liberal, comp.Liberal)
	deck = appendN(deck, Fascist, comp.Fascist)
	deck = appendN(deck, Communist, comp.Communist)

	if opts.Communists && opts.AntiPolicies {
		substituteFirst(deck, Fascist, AntiCommunist)
		substituteFirst(deck, Communist, AntiFascist)
		substituteFirst(deck, Liberal, SocialDemocratic)
	}

	deck = appendN(deck, Article48, comp.Article48)
	deck = appendN(deck, EnablingAct, comp.EnablingAct)

	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	return deck
}

func appendN(deck []Policy, p Policy, n int) []Policy {
	for i := 0; i < n; i++ {
		deck = append(deck, p)
	}
	return deck
}

func substituteFirst(deck []Policy, from, to Policy) {
	for i, p := range deck {
		if p == from {
			deck[i] = to
			return
		}
	}
}
