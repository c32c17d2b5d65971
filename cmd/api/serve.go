package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peds-aftercare/internal/adapters/auth/statictoken"
	"peds-aftercare/internal/platform/config"
	"peds-aftercare/internal/ports/auth"
	"peds-aftercare/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCommand(configPath *string) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "override PORT")
	return cmd
}

func runServe(parent context.Context, cfg config.Config) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger(cfg, nil)

	a, err := buildApp(ctx, cfg, log, os.Stdout)
	if err != nil {
		log.Error("startup failed", map[string]any{"error": err})
		return err
	}
	defer a.close()

	// sin API_TOKEN => modo dev (sin verifier)
	var verifier auth.AuthVerifier
	if cfg.APIToken != "" {
		verifier = statictoken.NewVerifier(cfg.APIToken, "")
	}

	opts := router.Options{
		Log:          log,
		AuthVerifier: verifier,
		Reminders:    a.reminders,
		Risk:         a.risk,
		Events:       a.events,
	}
	if a.metrics != nil {
		opts.Metrics = a.metrics.Handler()
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "auth": verifier != nil})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", map[string]any{"error": err})
		return err
	}
	return nil
}
