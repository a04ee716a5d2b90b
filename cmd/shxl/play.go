package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/kingrea/shxl/internal/config"
	"github.com/kingrea/shxl/internal/logging"
	"github.com/kingrea/shxl/internal/tui"
)

func playCmd(resolve func() (string, error)) *cobra.Command {
	var seed int64
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Watch automated seats play a game in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolve()
			if err != nil {
				return err
			}
			if err := config.InitDir(dir); err != nil {
				return err
			}
			logger, err := logging.New(dir)
			if err != nil {
				return err
			}
			defer logger.Close()

			var opts []tui.AppOption
			if seed != 0 {
				opts = append(opts, tui.WithSeed(seed))
			}
			app, err := tui.NewApp(dir, opts...)
			if err != nil {
				return err
			}
			logger.Printf("play session started in %s", dir)
			p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				log.Error().Err(err).Msg("tui exited")
				return err
			}
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for every table (0 uses the config or the clock)")
	return cmd
}
