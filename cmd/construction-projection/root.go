package main

import (
	"context"

	"github.com/iwvelando/construction-projection/internal/config"
	"github.com/iwvelando/construction-projection/internal/store"
	"github.com/iwvelando/construction-projection/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// rootOptions holds global flags and the state loaded before every command.
type rootOptions struct {
	configPath string
	logLevel   string

	conf   *config.Configuration
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "construction-projection",
		Short:         "Multi-year construction budget ledger projection",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newSeedCommand(opts))
	cmd.AddCommand(newReportCommand(opts))
	cmd.AddCommand(newImportBudgetCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

func (o *rootOptions) load() error {
	conf, err := config.LoadConfiguration(o.configPath)
	if err != nil {
		return err
	}
	if err := conf.Validate(); err != nil {
		return err
	}
	logger, err := initializeLogger(conf.Logging, o.logLevel)
	if err != nil {
		return err
	}
	o.conf = conf
	o.logger = logger
	return nil
}

func (o *rootOptions) openStore(ctx context.Context) (*store.Store, error) {
	s, err := store.Open(ctx, store.Config{
		Driver: o.conf.Database.Driver,
		DSN:    o.conf.Database.DSN,
	})
	if err != nil {
		return nil, err
	}
	o.logger.Debug("opened ledger database",
		zap.String("op", "main.openStore"),
		zap.String("driver", s.Driver()),
	)
	return s, nil
}

func (o *rootOptions) closeStore(s *store.Store) {
	if err := s.Close(); err != nil {
		o.logger.Warn("failed to close ledger database",
			zap.String("op", "main.closeStore"),
			zap.Error(err),
		)
	}
}
