package cli

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/clearledger/recon-backend/internal/adapters/ledgerapi"
	"github.com/clearledger/recon-backend/internal/api"
	"github.com/clearledger/recon-backend/internal/application/service"
	"github.com/clearledger/recon-backend/internal/infrastructure/config"
	"github.com/clearledger/recon-backend/internal/infrastructure/logging"
	"github.com/clearledger/recon-backend/internal/infrastructure/storage"
)

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port    int
	Verbose bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (overrides config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// RunServe runs the API server.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	client := ledgerapi.New(
		cfg.Upstream.BaseURL,
		cfg.Upstream.CompanyID,
		cfg.Upstream.APIKey,
		logging.NewLoggerWithSystem(loggingCfg, "ledgerapi"),
	)

	svc := service.NewMutationService(client, service.NewStore(), store, logger)

	// Initial fetch; the server still starts on failure so the dashboard
	// can surface the load error and retry.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := svc.Refresh(ctx, ledgerapi.ListParams{}); err != nil {
		logger.Warn("initial transaction fetch failed", slog.Any("error", err))
	}
	cancel()

	port := cfg.Server.Port
	if flags.Port != 0 {
		port = flags.Port
	}
	apiCfg := api.Config{
		Port:           port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	server := api.NewServer(apiCfg, svc, store, logger)

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("received shutdown signal")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", slog.Any("error", err))
		}
		close(done)
	}()

	if err := server.Start(); err != nil {
		return err
	}

	<-done
	logger.Info("server stopped")
	return nil
}
