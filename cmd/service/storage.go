package main

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen/quote-service/internal/adapters/storage/mongo"
	"github.com/jsamuelsen/quote-service/internal/adapters/storage/sqlite"
	"github.com/jsamuelsen/quote-service/internal/platform/config"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

// storageDriver is the selected quote driver plus what main needs to run it.
type storageDriver interface {
	ports.QuoteDriver
	ports.HealthChecker
}

// openStorage selects the backend from cfg.Remote. It never fails: a backend
// that cannot be opened yields a disconnected driver whose operations report
// unavailable. The returned func releases the driver.
func openStorage(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (storageDriver, func(context.Context) error) {
	logger.Info("storage backend selected",
		slog.Bool("remote", cfg.Remote),
		slog.String("backend", cfg.Backend()),
	)

	if cfg.Remote {
		store := mongo.New(mongo.Config{
			URI:              cfg.Mongo.URI,
			Database:         cfg.Mongo.Database,
			Collection:       cfg.Mongo.Collection,
			ConnectTimeout:   cfg.Mongo.ConnectTimeout,
			OperationTimeout: cfg.Mongo.OperationTimeout,
			Logger:           logger,
		})

		// Index creation needs a reachable server; quotes work without it.
		if store.Connected() {
			if err := store.Migrate(ctx); err != nil {
				logger.Warn("mongodb index setup skipped", slog.Any("error", err))
			}
		}

		return store, store.Close
	}

	store, err := sqlite.New(ctx, sqlite.Config{
		Path:        cfg.SQLite.Path,
		BusyTimeout: cfg.SQLite.BusyTimeout,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("sqlite open failed", slog.String("path", cfg.SQLite.Path), slog.Any("error", err))
		store = sqlite.NewDisconnected(err.Error())
	}

	return store, func(context.Context) error { return store.Close() }
}
