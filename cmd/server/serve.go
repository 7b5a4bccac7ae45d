package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"tradedash/internal/api"
	"tradedash/internal/display"
	"tradedash/internal/web"
	"tradedash/pkg/utils"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

// runServe запускает HTTP сервер и ждет SIGINT/SIGTERM
func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.cfg

	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	router := api.SetupRoutes(&api.Dependencies{
		StatusService: a.service,
		Renderer:      renderer,
		Page: web.Options{
			Locale:       display.LookupLocale(cfg.Dashboard.Locale),
			Title:        cfg.Dashboard.Title,
			Subtitle:     cfg.Dashboard.Subtitle,
			PollInterval: cfg.Dashboard.PollInterval,
			Location:     cfg.Dashboard.Location(),
		},
		Configured:  cfg.Database.Configured(),
		MetricsPath: metricsPath,
		CORSOrigins: cfg.CORS.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		utils.Info("starting server",
			utils.String("addr", server.Addr),
			utils.String("locale", cfg.Dashboard.Locale),
			utils.Duration("poll_interval", cfg.Dashboard.PollInterval),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		utils.Info("shutting down server", utils.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	utils.Info("server exited")
	return nil
}
