package main

import (
	"errors"
	"fmt"

	"github.com/iwvelando/construction-projection/internal/projection"
	"github.com/spf13/cobra"
)

func newRunCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one projection and print its outcome",
		Long: `Clear every PROJECTED ledger entry and rebuild it from the budget,
static rows and settings. The run is recorded in the run history.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := opts.openStore(ctx)
			if err != nil {
				return err
			}
			defer opts.closeStore(s)

			engine := projection.NewEngine(opts.logger, s, projection.WithRunRecorder(s))
			outcome := engine.Run(ctx)
			fmt.Fprintln(cmd.OutOrStdout(), outcome.String())
			if !outcome.OK() {
				return errors.New("projection run failed")
			}
			return nil
		},
	}
}
