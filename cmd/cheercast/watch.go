package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/cheercast/internal/config"
	"github.com/nguyentantai21042004/cheercast/internal/metrics"
	"github.com/nguyentantai21042004/cheercast/internal/watcher"
)

func NewWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Turn every memo dropped into the inbox into a broadcast",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}

	cmd.Flags().String("metrics-addr", "", "Serve /metrics and /healthz on this address (overrides metrics.addr)")
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd, true)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	cfg := a.cfg

	if err := ensureDirectories(cfg); err != nil {
		return err
	}

	w, err := watcher.New(cfg.Paths.Input, a.pipeline.ProcessFile, a.log, cfg.Performance.MaxConcurrent)
	if err != nil {
		return err
	}
	defer w.Stop()

	if addr, _ := cmd.Flags().GetString("metrics-addr"); addr != "" {
		cfg.Metrics.Addr = addr
	}
	if cfg.Metrics.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           newStatusRouter(a.metrics),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			a.log.Info(ctx, "Metrics listening on %s", cfg.Metrics.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error(ctx, "Metrics server error: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	a.log.Info(ctx, "========================================")
	a.log.Info(ctx, "CheerCast is ready!")
	a.log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	a.log.Info(ctx, "Output: %s", cfg.Paths.Output)
	a.log.Info(ctx, "Press Ctrl+C to stop")
	a.log.Info(ctx, "========================================")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watcher: %w", err)
	}

	a.log.Info(ctx, "CheerCast stopped")
	return nil
}

func newStatusRouter(rec *metrics.Recorder) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", rec.Handler())
	return r
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
