package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ytlink/applink/internal/app"
	"github.com/ytlink/applink/internal/config"
	"github.com/ytlink/applink/internal/logger"
	"github.com/ytlink/applink/internal/metadata"
	"github.com/ytlink/applink/internal/metrics"
)

const shutdownTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.ParseFlags()
	if err != nil {
		return fmt.Errorf("error parsing config: %w", err)
	}

	zapLogger, err := logger.NewLogger()
	if err != nil {
		return fmt.Errorf("error initializing logger: %w", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	metrics.Init()

	fetcher := metadata.NewClient(cfg.MetadataTimeout, cfg.MetadataCacheTTL, zapLogger.Named("metadata"))

	applinkApp := app.NewApp(cfg, fetcher, zapLogger)
	router, err := applinkApp.SetupRouter()
	if err != nil {
		return fmt.Errorf("error setting up router: %w", err)
	}

	srv := &http.Server{
		Addr:    cfg.RunAddr,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		zapLogger.Infow("starting server", "addr", cfg.RunAddr, "https", cfg.EnableHTTPS)
		if cfg.EnableHTTPS {
			serveErr <- serveTLS(srv, cfg, zapLogger)
			return
		}
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		zapLogger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	zapLogger.Info("server stopped")
	return nil
}

func serveTLS(srv *http.Server, cfg *config.ServerConfig, zapLogger *zap.SugaredLogger) error {
	if _, err := os.Stat(cfg.TLSCertPath); errors.Is(err, os.ErrNotExist) {
		if err := app.CreateCertificates(cfg.TLSCertPath, cfg.TLSKeyPath, zapLogger); err != nil {
			return fmt.Errorf("error creating certificates: %w", err)
		}
	}

	return srv.ListenAndServeTLS(cfg.TLSCertPath, cfg.TLSKeyPath)
}
