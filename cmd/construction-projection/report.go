package main

import (
	"github.com/iwvelando/construction-projection/internal/ledger"
	"github.com/iwvelando/construction-projection/pkg/constants"
	"github.com/iwvelando/construction-projection/pkg/output"
	"github.com/iwvelando/construction-projection/pkg/validation"
	"github.com/spf13/cobra"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	var (
		filter       ledger.SourceFilter
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print ledger entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// CLI override takes precedence over config
			format := opts.conf.Output.Format
			if outputFormat != "" {
				format = outputFormat
			}
			if format == "" {
				format = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(format); err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := opts.openStore(ctx)
			if err != nil {
				return err
			}
			defer opts.closeStore(s)

			entries, err := s.ListSourceEntries(ctx, filter)
			if err != nil {
				return err
			}

			switch format {
			case constants.OutputFormatCSV:
				return output.CsvFormat(cmd.OutOrStdout(), entries)
			default:
				output.PrettyFormat(cmd.OutOrStdout(), entries)
				return nil
			}
		},
	}

	cmd.Flags().StringVar(&filter.FlowSource, "flow-source", ledger.FlowSourceProjected, "flow source to list; empty for all")
	cmd.Flags().StringVar(&filter.Resource, "resource", "", "only list this resource")
	cmd.Flags().StringVar(&filter.FiscalYear, "fiscal-year", "", "only list this fiscal year")
	cmd.Flags().StringVar(&outputFormat, "output-format", "", "type of output override: pretty, csv")
	return cmd
}
