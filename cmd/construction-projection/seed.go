package main

import (
	"fmt"

	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSeedCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the default static rows and settings",
		Long: `Insert the default static rows when the static row table is empty, and each
default setting that does not exist yet. Existing rows are never changed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := opts.openStore(ctx)
			if err != nil {
				return err
			}
			defer opts.closeStore(s)

			rows, err := s.SeedStaticRows(ctx, ledger.DefaultStaticRows())
			if err != nil {
				return err
			}
			settings, err := s.SeedSettings(ctx, ledger.DefaultSettings())
			if err != nil {
				return err
			}

			opts.logger.Info("seeded ledger",
				zap.String("op", "main.seed"),
				zap.Int("staticRows", rows),
				zap.Int("settings", settings),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d static rows and %d settings\n", rows, settings)
			return nil
		},
	}
}
