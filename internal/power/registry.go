package power

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kingrea/shxl/internal/game"
)

// Registry maps power names to their records.
type Registry struct {
	mu     sync.RWMutex
	powers map[string]Power
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{powers: map[string]Power{}}
}

// Default returns a registry holding every power in the game.
func Default() *Registry {
	r := NewRegistry()
	for _, p := range table() {
		r.MustRegister(p)
	}
	return r
}

// Register installs a power. Returns an error if the name already exists.
func (r *Registry) Register(p Power) error {
	if err := p.validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.powers[p.Name]; exists {
		return fmt.Errorf("power: %s already registered", p.Name)
	}
	r.powers[p.Name] = p
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(p Power) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Get binds the named power to g.
func (r *Registry) Get(name string, g *game.Game) (Bound, error) {
	p, err := r.lookup(name)
	if err != nil {
		return Bound{}, err
	}
	if g == nil {
		return Bound{}, fmt.Errorf("power: game is required for %s", name)
	}
	return Bound{power: p, game: g}, nil
}

// Owner reports which office wields the named power.
func (r *Registry) Owner(name string) (Owner, error) {
	p, err := r.lookup(name)
	if err != nil {
		return "", err
	}
	return p.Owner, nil
}

// Info describes the named power.
func (r *Registry) Info(name string) (Info, error) {
	p, err := r.lookup(name)
	if err != nil {
		return Info{}, err
	}
	return p.Info, nil
}

// IDs returns a sorted list of registered power names.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.powers))
	for id := range r.powers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) lookup(name string) (Power, error) {
	r.mu.RLock()
	p, ok := r.powers[name]
	r.mu.RUnlock()
	if !ok {
		return Power{}, fmt.Errorf("%w %s", ErrUnknownPower, name)
	}
	return p, nil
}
