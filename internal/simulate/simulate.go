// Package simulate plays batches of games between automated seats and
// summarises the outcomes.
package simulate

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/shxl/internal/game"
	"github.com/kingrea/shxl/internal/phase"
	"github.com/kingrea/shxl/internal/power"
	"github.com/kingrea/shxl/internal/role"
	"github.com/kingrea/shxl/internal/strategy"
)

// Logger receives one line per finished game.
type Logger interface {
	Printf(format string, args ...any)
}

// Options configures a batch.
type Options struct {
	Games    int
	Workers  int
	Seed     int64
	Rules    game.Rules
	Strategy string
	Logger   Logger
	Clock    func() time.Time
}

// Outcome describes a single finished game.
type Outcome struct {
	Seed                int64
	Winner              game.Winner
	Rounds              int
	Enactments          int
	ChaosPolicies       int
	Executions          int
	HitlerElectedWinner bool
}

// Summary aggregates a batch.
type Summary struct {
	Games                int            `yaml:"games"`
	Players              int            `yaml:"players"`
	Communists           bool           `yaml:"communists"`
	Strategy             string         `yaml:"strategy"`
	Seed                 int64          `yaml:"seed"`
	Wins                 map[string]int `yaml:"wins"`
	AvgRounds            float64        `yaml:"avg_rounds"`
	AvgEnactments        float64        `yaml:"avg_enactments"`
	ChaosPolicies        int            `yaml:"chaos_policies"`
	Executions           int            `yaml:"executions"`
	HitlerChancellorWins int            `yaml:"hitler_chancellor_wins"`
	GeneratedAt          time.Time      `yaml:"generated_at"`
}

// WinRate returns the share of games won by w.
func (s Summary) WinRate(w game.Winner) float64 {
	if s.Games == 0 {
		return 0
	}
	return float64(s.Wins[string(w)]) / float64(s.Games)
}

// Winners lists the recorded winners in a stable order.
func (s Summary) Winners() []string {
	out := make([]string, 0, len(s.Wins))
	for w := range s.Wins {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Run plays opts.Games games across opts.Workers goroutines. Game i uses
// seed opts.Seed+i so a batch is reproducible regardless of scheduling.
func Run(ctx context.Context, opts Options) (Summary, error) {
	if opts.Games < 1 {
		return Summary{}, fmt.Errorf("simulate: games must be >= 1")
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Strategy == "" {
		opts.Strategy = "random"
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	reg := power.Default()
	outcomes := make([]Outcome, opts.Games)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(opts.Workers)
	for i := 0; i < opts.Games; i++ {
		i := i
		group.Go(func() error {
			out, err := play(ctx, reg, opts.Rules, opts.Strategy, opts.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("simulate: game %d: %w", i, err)
			}
			outcomes[i] = out
			if opts.Logger != nil {
				opts.Logger.Printf("game %d seed=%d winner=%s rounds=%d", i, out.Seed, out.Winner, out.Rounds)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return Summary{}, err
	}

	s := Summarise(outcomes)
	s.Players = opts.Rules.Players
	s.Communists = opts.Rules.Communists
	s.Strategy = opts.Strategy
	s.Seed = opts.Seed
	s.GeneratedAt = opts.Clock().UTC()
	return s, nil
}

// Play runs one game to completion.
func Play(ctx context.Context, rules game.Rules, strat string, seed int64) (Outcome, error) {
	return play(ctx, power.Default(), rules, strat, seed)
}

// play shares reg across games; a Registry is safe for concurrent lookups.
func play(ctx context.Context, reg *power.Registry, rules game.Rules, strat string, seed int64) (Outcome, error) {
	if rules.Players < role.MinPlayers || rules.Players > role.MaxPlayers {
		return Outcome{}, fmt.Errorf("players must be between %d and %d, got %d", role.MinPlayers, role.MaxPlayers, rules.Players)
	}
	seats, err := strategy.Seats(strat, rules.Players, seed)
	if err != nil {
		return Outcome{}, err
	}
	g, err := game.New(rules, seats,
		game.WithRand(rand.New(rand.NewSource(seed))),
		strategy.Oktoberfest(seed),
	)
	if err != nil {
		return Outcome{}, err
	}
	winner, err := phase.NewMachine(g, phase.WithPowers(reg)).Run(ctx)
	if err != nil {
		return Outcome{}, err
	}
	return outcome(g, winner, seed), nil
}

func outcome(g *game.Game, winner game.Winner, seed int64) Outcome {
	out := Outcome{
		Seed:       seed,
		Winner:     winner,
		Rounds:     g.State.Round,
		Enactments: len(g.State.Enactments),
		Executions: len(g.State.Players) - len(g.State.Active),
	}
	for _, e := range g.State.Enactments {
		if e.Chaos {
			out.ChaosPolicies++
		}
	}
	if winner == game.WinnerFascist && g.Board.PolicyWinner() != role.PartyFascist {
		out.HitlerElectedWinner = true
	}
	return out
}

// Summarise folds outcomes into a Summary.
func Summarise(outcomes []Outcome) Summary {
	s := Summary{Games: len(outcomes), Wins: map[string]int{}}
	if len(outcomes) == 0 {
		return s
	}
	var rounds, enacted int
	for _, o := range outcomes {
		s.Wins[string(o.Winner)]++
		rounds += o.Rounds
		enacted += o.Enactments
		s.ChaosPolicies += o.ChaosPolicies
		s.Executions += o.Executions
		if o.HitlerElectedWinner {
			s.HitlerChancellorWins++
		}
	}
	s.AvgRounds = float64(rounds) / float64(len(outcomes))
	s.AvgEnactments = float64(enacted) / float64(len(outcomes))
	return s
}

// SaveReport writes s into dir as simulation-YYYYMMDD-HHMMSS.yaml.
func SaveReport(dir string, s Summary) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("simulate: ensure report dir: %w", err)
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("simulate: encode report: %w", err)
	}
	stamp := s.GeneratedAt
	if stamp.IsZero() {
		stamp = time.Now().UTC()
	}
	path := filepath.Join(dir, "simulation-"+stamp.Format("20060102-150405")+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("simulate: write report: %w", err)
	}
	return path, nil
}

// LoadReport reads a report written by SaveReport.
func LoadReport(path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("simulate: read report: %w", err)
	}
	var s Summary
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Summary{}, fmt.Errorf("simulate: parse report: %w", err)
	}
	if s.Games == 0 {
		return Summary{}, errors.New("simulate: report has no games")
	}
	return s, nil
}
