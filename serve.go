package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/robalobadob/hangman/internal/history"
	"github.com/robalobadob/hangman/internal/httpserver"
	"github.com/robalobadob/hangman/internal/metrics"
	"github.com/robalobadob/hangman/internal/service"
	"github.com/robalobadob/hangman/internal/store"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP game server",
		RunE:  runServe,
	}
}

// runServe loads the corpus (failing fast when it is empty), wires the
// game service and serves HTTP until SIGINT/SIGTERM.
func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	corpus, err := loadCorpus(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load word corpus: %w", err)
	}
	st := corpus.Stats()
	logger.Info().Int("words", st.Total).Interface("byLength", st.LengthDistribution).Msg("word corpus loaded")

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	svc := service.New(corpus, store.NewMemoryStore(), history.NewStore(cfg.Game.HistoryLimit), service.Options{
		HintCooldown: cfg.Game.HintCooldown,
		Metrics:      metrics.New(reg),
		Logger:       logger,
	})
	api := httpserver.New(svc, httpserver.Options{
		Logger:         logger,
		Gatherer:       reg,
		CORS:           cfg.CORS,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("starting go-server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown error")
	}
	logger.Info().Msg("shutdown complete")
	return nil
}
