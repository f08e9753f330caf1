package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/iwvelando/construction-projection/internal/projection"
	"github.com/iwvelando/construction-projection/internal/server"
	"github.com/iwvelando/construction-projection/pkg/constants"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the projection UI and ledger API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, opts, address)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address override")
	return cmd
}

func serve(ctx context.Context, opts *rootOptions, address string) error {
	logger := opts.logger
	if address == "" {
		address = opts.conf.Server.Address
	}
	maxRequestSize, err := opts.conf.Server.RequestSizeBytes()
	if err != nil {
		return err
	}

	s, err := opts.openStore(ctx)
	if err != nil {
		return err
	}
	defer opts.closeStore(s)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	engine := projection.NewEngine(logger, s,
		projection.WithMetrics(projection.NewMetrics(reg)),
		projection.WithRunRecorder(s),
	)

	if opts.conf.Server.Passphrase == "" {
		logger.Warn("server.passphrase is not set; projection runs are disabled",
			zap.String("op", "main.serve"),
		)
	}

	srv := &http.Server{
		Addr: address,
		Handler: server.NewHandler(logger, s, engine, server.Options{
			MaxRequestSize: maxRequestSize,
			Passphrase:     opts.conf.Server.Passphrase,
			Version:        version,
			Gatherer:       reg,
			Registerer:     reg,
		}),
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			zap.String("op", "main.serve"),
			zap.String("address", address),
			zap.Int64("maxRequestSize", maxRequestSize),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server", zap.String("op", "main.serve"))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), constants.DefaultShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
