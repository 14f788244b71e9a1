package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/QTest-hq/livingstyle/internal/api"
	"github.com/QTest-hq/livingstyle/internal/config"
	"github.com/QTest-hq/livingstyle/internal/generator"
)

func serveCmd() *cobra.Command {
	var (
		flags projectFlags
		port  int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Generate the style guide and serve it over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts, err := buildOptions(cmd, &flags)
			if err != nil {
				return err
			}

			g := generator.NewGenerator()
			srv, err := api.NewServer(cfg, opts.Dest, func(ctx context.Context) (*generator.Result, error) {
				return g.Generate(ctx, opts)
			})
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			if _, err := srv.Rebuild(ctx); err != nil {
				return fmt.Errorf("failed to generate style guide: %w", err)
			}

			return listenAndServe(ctx, cfg, srv)
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "Port to listen on (default LIVINGSTYLE_PORT)")

	return cmd
}

// listenAndServe runs until ctx is cancelled, then shuts down gracefully
func listenAndServe(ctx context.Context, cfg *config.Config, srv *api.Server) error {
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		log.Info().Msg("server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		done <- httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Int("port", cfg.Port).Msg("serving style guide")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not listen on port %d: %w", cfg.Port, err)
	}

	if err := <-done; err != nil {
		return fmt.Errorf("could not gracefully shutdown the server: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
