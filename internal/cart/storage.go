package cart

import (
	"context"
	"errors"
	"fmt"

	"rentlify/internal/localstore"
	"rentlify/internal/model"
)

// StorageKey is the fixed local store key holding the serialised cart.
const StorageKey = "rentlify_cart"

// Storage persists a whole cart list.
type Storage interface {
	// Load returns the persisted items. A cart that was never saved loads as
	// an empty list; undecodable data is reported as model.ErrCorruptCart.
	Load(ctx context.Context) ([]model.LineItem, error)

	// Save replaces the persisted list.
	Save(ctx context.Context, items []model.LineItem) error
}

// localStorage keeps the cart as JSON under StorageKey.
type localStorage struct {
	store localstore.Store
}

// NewLocalStorage adapts a session-scoped local store to the Storage port.
func NewLocalStorage(store localstore.Store) Storage {
	return &localStorage{store: store}
}

func (s *localStorage) Load(ctx context.Context) ([]model.LineItem, error) {
	data, err := s.store.Get(ctx, StorageKey)
	if errors.Is(err, localstore.ErrNotFound) {
		return []model.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return model.DecodeLineItems(data)
}

func (s *localStorage) Save(ctx context.Context, items []model.LineItem) error {
	data, err := model.EncodeLineItems(items)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
