package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/coinsage/coinsage/internal/binance"
	"github.com/coinsage/coinsage/internal/config"
	"github.com/coinsage/coinsage/internal/daemon"
	"github.com/coinsage/coinsage/internal/database"
	"github.com/coinsage/coinsage/internal/importer"
	"github.com/coinsage/coinsage/internal/model"
	"github.com/coinsage/coinsage/internal/secrets"
	"github.com/coinsage/coinsage/internal/store"
	"github.com/coinsage/coinsage/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/importerd.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting importerd",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"exchange_url", cfg.Exchange.RestURL,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Postgres.Host,
		"port", cfg.Database.Postgres.Port,
		"database", cfg.Database.Postgres.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	transactions := store.NewTransactionStore(pool)
	credentials := store.NewCredentialStore(pool)

	// One import session per credential: decrypt the key material, build
	// a client for it, run all steps. The session closes the client.
	importFn := func(ctx context.Context, cred model.Credential, start, end time.Time) error {
		apiKey, err := secrets.DecryptString(cfg.Secrets.EncryptionKey, cred.APIKey)
		if err != nil {
			return fmt.Errorf("decrypt api key: %w", err)
		}
		secretKey, err := secrets.DecryptString(cfg.Secrets.EncryptionKey, cred.SecretKey)
		if err != nil {
			return fmt.Errorf("decrypt secret key: %w", err)
		}

		client := binance.NewClient(cfg.Exchange.RestURL, apiKey, secretKey,
			binance.WithTimeout(cfg.Exchange.Timeout),
			binance.WithRetryPolicy(binance.RetryPolicy{
				Wait:        cfg.Exchange.RetryWait,
				MaxAttempts: cfg.Exchange.MaxRetries,
			}),
			binance.WithRecvWindow(cfg.Exchange.RecvWindow),
			binance.WithRateGap(cfg.Exchange.RateGap),
			binance.WithFiatPageSize(cfg.Importer.FiatPageSize),
			binance.WithLogger(logger),
		)

		imp, err := importer.New(ctx, client, transactions, cred.PortfolioID, start, end, logger)
		if err != nil {
			client.Close()
			return err
		}
		return imp.Run(ctx)
	}

	d := daemon.New(daemon.Config{
		Interval:   cfg.Importer.PollInterval,
		WindowDays: cfg.Importer.WindowDays,
	}, credentials, importFn, logger)

	if err := d.Start(ctx); err != nil {
		logger.Error("failed to start daemon", "error", err)
		os.Exit(1)
	}

	healthServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Health.Port),
		Handler: createHealthHandler(pool, d),
	}

	var g errgroup.Group
	g.Go(func() error {
		logger.Info("starting health server", "port", cfg.Health.Port)
		if err := healthServer.ListenAndServe(); err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()

		logger.Info("shutting down...")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := d.Stop(shutdownCtx); err != nil {
			logger.Warn("daemon stop timed out", "error", err)
		}
		return healthServer.Shutdown(shutdownCtx)
	})

	logger.Info("importerd running",
		"instance_id", cfg.Instance.ID,
		"health_url", fmt.Sprintf("http://localhost:%d/health", cfg.Health.Port),
	)

	if err := g.Wait(); err != nil {
		logger.Error("importerd exited with error", "error", err)
		os.Exit(1)
	}

	logger.Info("importerd stopped")
}

// createHealthHandler creates the HTTP handler for health checks.
func createHealthHandler(pool *pgxpool.Pool, d *daemon.Daemon) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		health := struct {
			Status     string         `json:"status"`
			Components map[string]any `json:"components"`
		}{
			Status:     "healthy",
			Components: make(map[string]any),
		}

		// Check database
		if err := pool.Ping(ctx); err != nil {
			health.Status = "unhealthy"
			health.Components["postgres"] = map[string]string{
				"status": "disconnected",
				"error":  err.Error(),
			}
		} else {
			health.Components["postgres"] = "connected"
		}

		// Report sweep progress
		lastRun := d.LastRun()
		health.Components["import_daemon"] = map[string]any{
			"last_run": lastRun,
		}
		if lastRun == "" {
			health.Status = "degraded"
		}

		w.Header().Set("Content-Type", "application/json")
		if health.Status == "unhealthy" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(health)
	})

	return mux
}
