package main

import (
	"context"
	"fmt"

	"rentlify/internal/catalog"
	"rentlify/internal/config"
	"rentlify/internal/database"
	"rentlify/internal/localstore"
	"rentlify/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// backend is the storage selected by STORE_BACKEND.
type backend struct {
	Store    localstore.Store
	Products repository.ProductRepository
	closers  []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

// openBackend wires the session store and product source. Memory and Redis
// serve products from the in-memory catalogue; Postgres serves them from the
// products table after seeding it from the catalogue.
func openBackend(ctx context.Context, cfg *config.Config, products *catalog.Set, logger zerolog.Logger) (*backend, error) {
	switch cfg.Store.Backend {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := localstore.NewRedis(client, cfg.Redis.TTL(), logger)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis session store")
		return &backend{
			Store:    store,
			Products: products,
			closers:  []func(){func() { _ = client.Close() }},
		}, nil

	case config.StorePostgres:
		if cfg.Database.Migrate {
			if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
		}

		pool, err := database.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}

		productRepo := repository.NewProductRepository(pool, logger)
		if products != nil {
			if _, err := productRepo.Upsert(ctx, products.Products()); err != nil {
				pool.Close()
				return nil, fmt.Errorf("failed to seed products: %w", err)
			}
		}

		return &backend{
			Store:    repository.NewLocalStoreRepository(pool, logger),
			Products: productRepo,
			closers:  []func(){pool.Close},
		}, nil

	default:
		logger.Info().Msg("using in-memory session store")
		return &backend{
			Store:    localstore.NewMemory(),
			Products: products,
		}, nil
	}
}
