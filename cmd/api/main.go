package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"pet-care-log/internal/adapters/cache/rediscache"
	"pet-care-log/internal/adapters/line"
	"pet-care-log/internal/adapters/storage/sqlstore"
	"pet-care-log/internal/config"
	"pet-care-log/internal/platform/logger"
	"pet-care-log/internal/platform/metrics"
	"pet-care-log/internal/ports/messaging"
	"pet-care-log/internal/router"
)

const shutdownTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:           "petlog",
	Short:         "petlog - LINE bot que anota los cuidados de la mascota",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook server (default)",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, initDBCmd, exportCmd, classifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewFromEnv()
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("database unavailable", map[string]any{"driver": cfg.DB.Driver, "error": err})
		return err
	}
	defer db.Close()

	lineClient, err := line.NewClient(line.Config{ChannelAccessToken: cfg.Line.ChannelAccessToken})
	if err != nil {
		return err
	}
	parser, err := line.NewParser(cfg.Line.ChannelSecret)
	if err != nil {
		return err
	}

	var profiles messaging.ProfileLookup = lineClient
	if cfg.Redis.Addr != "" {
		rc, err := rediscache.NewClient(ctx, rediscache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// La caché es opcional: sin Redis se consulta LINE directo.
			log.Warn("redis unavailable, profile cache disabled", map[string]any{"addr": cfg.Redis.Addr, "error": err})
		} else {
			defer rc.Close()
			profiles = rediscache.NewProfileCache(lineClient, rc, cfg.Redis.TTL, log)
		}
	}

	metrics.Register()

	handler := router.NewRouter(router.Options{
		Events:     sqlstore.NewCareEventsRepo(db, dialect),
		Parser:     parser,
		Replier:    lineClient,
		Profiles:   profiles,
		AdminToken: cfg.AdminToken,
		Logger:     log,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "driver": string(dialect)})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server error", map[string]any{"error": err})
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", map[string]any{"error": err})
		return err
	}
	log.Info("server shutdown complete", nil)
	return nil
}

// openStore abre el pool y asegura la tabla. Cualquier fallo es fatal para el comando.
func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, sqlstore.Dialect, error) {
	dialect, err := sqlstore.ParseDialect(cfg.DB.Driver)
	if err != nil {
		return nil, "", &config.ConfigError{Field: "DB_DRIVER", Message: err.Error()}
	}

	db, err := sqlstore.Open(ctx, dialect, cfg.DB.DSN())
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}

	if err := sqlstore.EnsureSchema(ctx, db, dialect); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ensure schema: %w", err)
	}
	return db, dialect, nil
}
