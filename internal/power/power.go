// Package power implements the executive powers unlocked by the tracks and
// by emergency cards, and the registry that dispatches them by name.
package power

import (
	"errors"
	"fmt"

	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/role"
)

// Owner is the office that wields a power.
type Owner string

const (
	OwnerPresident  Owner = "president"
	OwnerChancellor Owner = "chancellor"
)

// Arity is the argument shape a power executes with.
type Arity int

const (
	// ArityNone powers take no arguments.
	ArityNone Arity = iota
	// ArityTarget powers take one target player.
	ArityTarget
	// ArityImpeach powers take a target and an optional revealer.
	ArityImpeach
	// ArityRevealer powers take only an optional revealer.
	ArityRevealer
)

func (a Arity) String() string {
	switch a {
	case ArityNone:
		return "no arguments"
	case ArityTarget:
		return "target"
	case ArityImpeach:
		return "target and revealer"
	case ArityRevealer:
		return "revealer"
	}
	return fmt.Sprintf("arity(%d)", int(a))
}

var (
	// ErrUnknownPower is returned for a name the registry does not hold.
	ErrUnknownPower = errors.New("power: unknown power")
	// ErrArity is returned when a power is executed with the wrong arguments.
	ErrArity = errors.New("power: wrong arguments")
)

// Info describes a power without binding it to a game.
type Info struct {
	Name  string
	Owner Owner
	Arity Arity
	// Purpose is what a decider is told when choosing the target.
	Purpose game.Purpose
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("power: name is required")
	}
	if i.Owner != OwnerPresident && i.Owner != OwnerChancellor {
		return fmt.Errorf("power: invalid owner %q for %s", i.Owner, i.Name)
	}
	if i.Arity != ArityNone && i.Arity != ArityRevealer && i.Purpose == "" {
		return fmt.Errorf("power: purpose is required for %s", i.Name)
	}
	return nil
}

// Result is what a power hands back. Fields not produced by a power are left
// zero. OK is false when the power was a no-op (nobody marked, empty deck,
// Hitler cannot be radicalized, no revealer available, and so on).
type Result struct {
	Player    *game.Player
	Party     role.Party
	Policy    policy.Policy
	Policies  []policy.Policy
	PlayerIDs []string
	OK        bool
}

// Power is one record in the closed power table. Exactly one of the run
// functions is set, matching Info.Arity.
type Power struct {
	Info

	run         func(g *game.Game) Result
	runTarget   func(g *game.Game, target *game.Player) Result
	runImpeach  func(g *game.Game, target, revealer *game.Player) Result
	runRevealer func(g *game.Game, revealer *game.Player) Result
}

func (p Power) validate() error {
	if err := p.Info.Validate(); err != nil {
		return err
	}
	var ok bool
	switch p.Arity {
	case ArityNone:
		ok = p.run != nil
	case ArityTarget:
		ok = p.runTarget != nil
	case ArityImpeach:
		ok = p.runImpeach != nil
	case ArityRevealer:
		ok = p.runRevealer != nil
	}
	if !ok {
		return fmt.Errorf("power: %s has no implementation for %s", p.Name, p.Arity)
	}
	return nil
}

func noArgs(name string, owner Owner, fn func(*game.Game) Result) Power {
	return Power{Info: Info{Name: name, Owner: owner, Arity: ArityNone}, run: fn}
}

func targeted(name string, owner Owner, purpose game.Purpose, fn func(*game.Game, *game.Player) Result) Power {
	return Power{Info: Info{Name: name, Owner: owner, Arity: ArityTarget, Purpose: purpose}, runTarget: fn}
}

// Bound is a power tied to one game.
type Bound struct {
	power Power
	game  *game.Game
}

// Info returns the bound power's description.
func (b Bound) Info() Info {
	return b.power.Info
}

// Execute runs a power that takes no arguments.
func (b Bound) Execute() (Result, error) {
	if b.power.Arity != ArityNone {
		return Result{}, b.arityErr(ArityNone)
	}
	return b.power.run(b.game), nil
}

// ExecuteOn runs a power against target.
func (b Bound) ExecuteOn(target *game.Player) (Result, error) {
	if b.power.Arity != ArityTarget {
		return Result{}, b.arityErr(ArityTarget)
	}
	if target == nil {
		return Result{}, fmt.Errorf("%w: %s needs a target", ErrArity, b.power.Name)
	}
	return b.power.runTarget(b.game, target), nil
}

// ExecuteWith runs an impeachment. A nil revealer is chosen by the president.
func (b Bound) ExecuteWith(target, revealer *game.Player) (Result, error) {
	if b.power.Arity != ArityImpeach {
		return Result{}, b.arityErr(ArityImpeach)
	}
	if target == nil {
		return Result{}, fmt.Errorf("%w: %s needs a target", ErrArity, b.power.Name)
	}
	return b.power.runImpeach(b.game, target, revealer), nil
}

// ExecuteRevealing runs a power whose only argument is an optional revealer.
func (b Bound) ExecuteRevealing(revealer *game.Player) (Result, error) {
	if b.power.Arity != ArityRevealer {
		return Result{}, b.arityErr(ArityRevealer)
	}
	return b.power.runRevealer(b.game, revealer), nil
}

func (b Bound) arityErr(called Arity) error {
	return fmt.Errorf("%w: %s takes %s, called with %s", ErrArity, b.power.Name, b.power.Arity, called)
}
