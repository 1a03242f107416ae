package repository

import (
	"context"
	"errors"
	"fmt"

	"rentlify/internal/localstore"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// LocalStoreRepository implements localstore.Store on the local_store table.
type LocalStoreRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewLocalStoreRepository creates a PostgreSQL-backed session store.
func NewLocalStoreRepository(pool *pgxpool.Pool, logger zerolog.Logger) *LocalStoreRepository {
	return &LocalStoreRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "local_store").Logger(),
	}
}

// Get returns the value for key or localstore.ErrNotFound.
func (r *LocalStoreRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := r.pool.QueryRow(ctx, `SELECT value FROM local_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, localstore.ErrNotFound
		}
		r.logger.Error().Err(err).Str("key", key).Msg("failed to read local store key")
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, nil
}

// Set overwrites the value for key.
func (r *LocalStoreRepository) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO local_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		r.logger.Error().Err(err).Str("key", key).Msg("failed to write local store key")
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Delete removes the keys. Missing keys are ignored.
func (r *LocalStoreRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if _, err := r.pool.Exec(ctx, `DELETE FROM local_store WHERE key = ANY($1)`, keys); err != nil {
		r.logger.Error().Err(err).Strs("keys", keys).Msg("failed to delete local store keys")
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}
