package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kingrea/shxl/internal/config"
	"github.com/kingrea/shxl/internal/logging"
	"github.com/kingrea/shxl/internal/simulate"
)

func simulateCmd(ctx context.Context, load func() (*config.Config, error)) *cobra.Command {
	var (
		games    int
		workers  int
		players  int
		seed     int64
		strat    string
		noReport bool
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Play a batch of games between automated seats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			opts := simulate.Options{
				Games:    cfg.Project.Simulate.Games,
				Workers:  cfg.Project.Simulate.Workers,
				Seed:     cfg.Project.Game.Seed,
				Rules:    cfg.Rules(),
				Strategy: cfg.Project.Strategy,
			}
			if cmd.Flags().Changed("games") {
				opts.Games = games
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workers
			}
			if cmd.Flags().Changed("players") {
				opts.Rules.Players = players
			}
			if cmd.Flags().Changed("strategy") {
				opts.Strategy = strat
			}
			if cmd.Flags().Changed("seed") {
				opts.Seed = seed
			}
			if opts.Seed == 0 {
				opts.Seed = time.Now().UnixNano()
			}

			logger, err := logging.New(cfg.ProjectDir)
			if err != nil {
				return err
			}
			defer logger.Close()
			opts.Logger = logger

			log.Info().Int("games", opts.Games).Int("players", opts.Rules.Players).Str("strategy", opts.Strategy).Msg("simulating")
			summary, err := simulate.Run(ctx, opts)
			if err != nil {
				return err
			}
			printSummary(cmd, summary)
			if noReport {
				return nil
			}
			path, err := simulate.SaveReport(cfg.ReportsDir(), summary)
			if err != nil {
				return err
			}
			log.Info().Str("path", path).Msg("report saved")
			return nil
		},
	}
	cmd.Flags().IntVarP(&games, "games", "n", 0, "number of games")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent games")
	cmd.Flags().IntVarP(&players, "players", "p", 0, "table size")
	cmd.Flags().Int64Var(&seed, "seed", 0, "base seed; game i uses seed+i")
	cmd.Flags().StringVarP(&strat, "strategy", "s", "", "random or partisan")
	cmd.Flags().BoolVar(&noReport, "no-report", false, "skip writing the yaml report")
	return cmd
}

func printSummary(cmd *cobra.Command, s simulate.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%d games · %d players · %s seats · seed %d\n", s.Games, s.Players, s.Strategy, s.Seed)
	for _, w := range s.Winners() {
		fmt.Fprintf(out, "  %-22s %5d  %5.1f%%\n", w, s.Wins[w], 100*float64(s.Wins[w])/float64(s.Games))
	}
	fmt.Fprintf(out, "avg rounds %.1f · avg enactments %.1f\n", s.AvgRounds, s.AvgEnactments)
	fmt.Fprintf(out, "chaos policies %d · executions %d · hitler chancellor wins %d\n", s.ChaosPolicies, s.Executions, s.HitlerChancellorWins)
}
