package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvaleed/personnel/internal/config"
	"github.com/mvaleed/personnel/internal/storage"
	"github.com/mvaleed/personnel/internal/storage/memory"
	"github.com/mvaleed/personnel/internal/storage/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "personnel",
		Short:         "Personnel directory service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newServeCmd(), newMigrateCmd())
	return rootCmd
}

// bootstrap loads configuration and installs the default logger.
func bootstrap() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg, os.Stdout)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func newLogger(cfg *config.Config, out io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	if strings.EqualFold(cfg.LogFormat, "text") {
		return slog.New(slog.NewTextHandler(out, opts))
	}
	return slog.New(slog.NewJSONHandler(out, opts))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openedStore is the storage backend selected by configuration.
type openedStore struct {
	repos *storage.Repositories
	tx    storage.Transactor
	close func()
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*openedStore, error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store := memory.New()
		if err := store.SeedReferenceData(ctx); err != nil {
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
		logger.Warn("using in-memory store, data is lost on exit")
		return &openedStore{repos: store.Repositories(), tx: store, close: func() {}}, nil

	default:
		logger.Info("connecting to database")
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := db.Ping(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("ping database: %w", err)
		}
		logger.Info("database connected")

		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return &openedStore{repos: db.Repositories(), tx: db, close: db.Close}, nil
	}
}
