package cmd

import (
	"context"
	"fmt"

	"popcorn-palace/internal/data/boltstore"
	"popcorn-palace/internal/data/memstore"
	"popcorn-palace/internal/data/repository"
	"popcorn-palace/pkg/database"
	"popcorn-palace/pkg/utils"

	"go.uber.org/zap"
)

// OpenStore returns the repository for the configured driver and a function
// releasing its resources.
func OpenStore(ctx context.Context, config *utils.Config, log *zap.Logger) (*repository.Repository, func(), error) {
	switch config.Store.Driver {
	case utils.StorePostgres:
		db, err := database.InitDB(config.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		log.Info("Database connected successfully",
			zap.String("host", config.Database.Host),
			zap.String("name", config.Database.Name),
		)
		return repository.NewRepository(db, log), db.Close, nil

	case utils.StoreBolt:
		store, err := boltstore.Open(config.Store.BoltPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open bolt store: %w", err)
		}
		log.Info("Bolt store opened", zap.String("path", config.Store.BoltPath))
		return store.Repository(), func() {
			if err := store.Close(); err != nil {
				log.Warn("Failed to close bolt store", zap.Error(err))
			}
		}, nil

	case utils.StoreMemory:
		log.Warn("Using in-memory store, data is lost on exit")
		return memstore.New(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}
}
