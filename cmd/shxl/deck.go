package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kingrea/shxl/internal/board"
	"github.com/kingrea/shxl/internal/config"
	"github.com/kingrea/shxl/internal/policy"
	"github.com/kingrea/shxl/internal/power"
	"github.com/kingrea/shxl/internal/role"
)

func deckCmd(load func() (*config.Config, error)) *cobra.Command {
	var players int
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Print the deck composition and power tracks for the configured table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			rules := cfg.Rules()
			if cmd.Flags().Changed("players") {
				rules.Players = players
			}
			if rules.Players < role.MinPlayers || rules.Players > role.MaxPlayers {
				return fmt.Errorf("players must be between %d and %d", role.MinPlayers, role.MaxPlayers)
			}
			out := cmd.OutOrStdout()
			rng := rand.New(rand.NewSource(1))
			deck := policy.NewDeck(rules.DeckOptions(), rng)
			tally := policy.Tally(deck)
			fmt.Fprintf(out, "%d players · %d cards\n", rules.Players, len(deck))
			for _, p := range policy.All {
				if n := tally[p]; n > 0 {
					fmt.Fprintf(out, "  %-18s %2d%s\n", p, n, cardNote(p))
				}
			}

			b := board.New(rules.Players, rules.Communists, deck, rng)
			reg := power.Default()
			for _, party := range []role.Party{role.PartyLiberal, role.PartyFascist, role.PartyCommunist} {
				if b.Track(party).Size == 0 {
					continue
				}
				line, err := formatTrack(b, reg, party)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-9s track: %s\n", party, line)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&players, "players", "p", 0, "table size")
	return cmd
}

func cardNote(p policy.Policy) string {
	switch {
	case p.IsAnti():
		return "  anti-policy"
	case p.IsEmergency():
		return "  emergency power"
	}
	return ""
}

// formatTrack lists each slot of a track as position:power(owner); the last
// slot wins the game.
func formatTrack(b *board.Board, reg *power.Registry, party role.Party) (string, error) {
	size := b.Track(party).Size
	parts := make([]string, 0, size)
	for i := 1; i <= size; i++ {
		slot := "-"
		if i == size {
			slot = "win"
		} else if name := b.PowerAt(party, i); name != "" {
			info, err := reg.Info(name)
			if err != nil {
				return "", err
			}
			slot = fmt.Sprintf("%s(%s)", name, info.Owner)
		}
		parts = append(parts, fmt.Sprintf("%d:%s", i, slot))
	}
	return strings.Join(parts, " "), nil
}
