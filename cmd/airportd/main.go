package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ria-intl/airportd/internal/api"
	"github.com/ria-intl/airportd/internal/config"
	"github.com/ria-intl/airportd/internal/ops"
	"github.com/ria-intl/airportd/internal/storage/jsonfile"
	"github.com/ria-intl/airportd/internal/storage/sqlite"
	"github.com/ria-intl/airportd/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "airportd: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		return err
	}
	defer log.Sync()

	store := jsonfile.NewStore(cfg.Storage.DataDir, log)

	// The audit database may live under the data directory, which does not
	// exist on first run
	if err := os.MkdirAll(filepath.Dir(cfg.Storage.AuditDBPath), 0o755); err != nil {
		return fmt.Errorf("failed to create audit database directory: %w", err)
	}
	auditDB, err := sqlite.Open(cfg.Storage.AuditDBPath)
	if err != nil {
		return err
	}
	defer auditDB.Close()

	auditStore, err := sqlite.NewAuditStorage(auditDB, log)
	if err != nil {
		return err
	}

	simInterval := time.Duration(cfg.Simulation.IntervalSeconds) * time.Second
	service, err := ops.New(store, auditStore, cfg.Airline.TicketCode, simInterval, log)
	if err != nil {
		return err
	}

	router := api.NewRouter(service, cfg, log)
	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Poll the simulator; runs inside the cooldown are no-ops
	go func() {
		ticker := time.NewTicker(simInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				service.UpdateSimulation(now)
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting", logger.String("addr", cfg.Server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn("Server shutdown error", logger.Error(err))
	}

	if err := service.SaveAll(); err != nil {
		return fmt.Errorf("failed to save data on shutdown: %w", err)
	}

	return nil
}
