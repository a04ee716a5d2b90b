package strategy

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/kingrea/shxl/internal/game"
)

// Factory builds a decider around its own random source.
type Factory func(rng *rand.Rand) game.Decider

var factories = map[string]Factory{
	"random":   func(rng *rand.Rand) game.Decider { return NewRandom(rng) },
	"partisan": func(rng *rand.Rand) game.Decider { return NewPartisan(rng) },
}

// New builds the named decider.
func New(name string, rng *rand.Rand) (game.Decider, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("strategy: unknown strategy %s", name)
	}
	return factory(rng), nil
}

// Names returns the sorted strategy names.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Seats builds n seats of the named strategy. Each seat gets its own random
// source derived from seed so seats never share state.
func Seats(name string, n int, seed int64) ([]game.Seat, error) {
	seats := make([]game.Seat, n)
	for i := range seats {
		d, err := New(name, rand.New(rand.NewSource(seed+int64(i)*7919)))
		if err != nil {
			return nil, err
		}
		seats[i] = game.Seat{Name: fmt.Sprintf("%s-%d", name, i+1), Decider: d}
	}
	return seats, nil
}

// Oktoberfest swaps every seat to a Random decider during the festival
// month. Each seat's festival source derives from seed and its seat number.
func Oktoberfest(seed int64) game.Option {
	return game.WithFestivalDecider(func(p *game.Player) game.Decider {
		return NewRandom(rand.New(rand.NewSource(seed + int64(p.Seat)*104729)))
	})
}
