package main

import (
	"fmt"

	"github.com/iwvelando/construction-projection/internal/budgetfile"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newImportBudgetCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "import-budget <file.yaml>",
		Short: "Load budget entries from a YAML file",
		Long: `Load budget entries from a YAML file. Entries are keyed by period, fund,
program, project and activity; an existing entry with the same key is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := budgetfile.Load(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := opts.openStore(ctx)
			if err != nil {
				return err
			}
			defer opts.closeStore(s)

			if err := s.UpsertBudgetEntries(ctx, entries); err != nil {
				return err
			}

			opts.logger.Info("imported budget entries",
				zap.String("op", "main.importBudget"),
				zap.String("file", args[0]),
				zap.Int("entries", len(entries)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d budget entries\n", len(entries))
			return nil
		},
	}
}
