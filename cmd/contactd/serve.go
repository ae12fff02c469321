package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/locallens/contact-backend/internal/config"
	"github.com/locallens/contact-backend/internal/handler"
	"github.com/locallens/contact-backend/internal/logger"
	"github.com/locallens/contact-backend/internal/router"
	"github.com/locallens/contact-backend/internal/server"
	"github.com/locallens/contact-backend/internal/service"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Run the HTTP server until SIGINT or SIGTERM.

Example:
  contactd serve              # listen on $PORT (default 5000)
  contactd serve --port 8080  # override the port`,
	RunE: runServe,
}

func init() {
	addServeFlags(serveCmd)
}

// addServeFlags registers the serve flags on cmd. The root command carries
// them too since it runs serve when no subcommand is given.
func addServeFlags(cmd *cobra.Command) {
	cmd.Flags().String("port", "", "port to listen on (overrides PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Server.Port = port
	}

	return serve(cmd.Context(), cfg)
}

func serve(ctx context.Context, cfg *config.Config) error {
	loggerService, err := logger.NewLoggerService(cfg.Observability)
	if err != nil {
		return err
	}

	log, logFile, err := logger.NewLogger(cfg.Observability, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return err
	}
	defer logFile.Close()

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	services, err := service.NewServices(srv)
	if err != nil {
		loggerService.Shutdown()
		return fmt.Errorf("failed to create services: %w", err)
	}

	handlers := handler.NewHandlers(srv, services)
	srv.SetupHTTPServer(router.NewRouter(srv, handlers))

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		loggerService.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("server stopped unexpectedly")
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	if err := <-serveErr; err != nil {
		return err
	}

	log.Info().Msg("server exited properly")

	return nil
}
