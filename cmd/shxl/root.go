package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kingrea/shxl/internal/config"
)

// Execute builds the command tree and runs it.
func Execute(ctx context.Context) error {
	return newRootCmd(ctx).ExecuteContext(ctx)
}

func newRootCmd(ctx context.Context) *cobra.Command {
	var projectDir string
	root := &cobra.Command{
		Use:           "shxl",
		Short:         "Secret Hitler XL rules engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&projectDir, "dir", "C", "", "project directory (defaults to the working directory)")

	resolve := func() (string, error) {
		if projectDir != "" {
			return projectDir, nil
		}
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return cwd, nil
	}
	load := func() (*config.Config, error) {
		dir, err := resolve()
		if err != nil {
			return nil, err
		}
		return config.Load(dir)
	}

	root.AddCommand(
		initCmd(resolve),
		playCmd(resolve),
		simulateCmd(ctx, load),
		deckCmd(load),
	)
	return root
}

func initCmd(resolve func() (string, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the .shxl directory with a default config",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := resolve()
			if err != nil {
				return err
			}
			if err := config.InitDir(dir); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initialised %s\n", config.Dir)
			return nil
		},
	}
}
