// Package cart holds the line items of one session and keeps them persisted.
package cart

import (
	"context"
	"errors"
	"fmt"

	"rentlify/internal/model"
	"rentlify/internal/pricing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Store is the authoritative item list of a single session. Every mutation
// writes the full list back to its Storage. A Store is not safe for
// concurrent use; callers serialise access per session.
type Store struct {
	storage Storage
	items   []model.LineItem
	logger  zerolog.Logger
}

// Open loads the persisted cart. Corrupt data is logged and replaced by an
// empty cart instead of failing; other storage errors are returned.
func Open(ctx context.Context, storage Storage, logger zerolog.Logger) (*Store, error) {
	s := &Store{
		storage: storage,
		logger:  logger.With().Str("component", "cart").Logger(),
	}

	items, err := storage.Load(ctx)
	switch {
	case errors.Is(err, model.ErrCorruptCart):
		s.logger.Warn().Err(err).Msg("discarding corrupt cart data, starting with an empty cart")
		items = nil
	case err != nil:
		return nil, fmt.Errorf("failed to open cart: %w", err)
	}

	s.items = make([]model.LineItem, 0, len(items))
	for _, item := range items {
		s.items = append(s.items, item.Normalize())
	}

	return s, nil
}

// Items returns a copy of the current line items.
func (s *Store) Items() []model.LineItem {
	out := make([]model.LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	return len(s.items)
}

// ItemCount returns the total number of units across all lines.
func (s *Store) ItemCount() int {
	return s.Totals(decimal.Zero).ItemCount
}

// Totals computes the current breakdown with the given delivery charge.
func (s *Store) Totals(deliveryCharge decimal.Decimal) pricing.Totals {
	return pricing.ComputeTotals(s.items, deliveryCharge)
}

// Add merges the item into an existing (id, kind) line by incrementing its
// quantity, or appends it as a new line with quantity one.
func (s *Store) Add(ctx context.Context, item model.LineItem) error {
	if !item.Kind.Valid() {
		return model.ErrInvalidKind
	}

	if i := s.index(item.ID, item.Kind); i >= 0 {
		s.items[i].Quantity++
		s.logger.Debug().
			Str("product_id", item.ID).
			Str("kind", string(item.Kind)).
			Int("quantity", s.items[i].Quantity).
			Msg("incremented cart line")
		return s.save(ctx)
	}

	item.Quantity = 1
	s.items = append(s.items, item.Normalize())
	s.logger.Debug().
		Str("product_id", item.ID).
		Str("kind", string(item.Kind)).
		Msg("added cart line")

	return s.save(ctx)
}

// UpdateQuantity stores an absolute quantity, clamped to at least one.
// Unknown lines are ignored.
func (s *Store) UpdateQuantity(ctx context.Context, id string, kind model.Kind, quantity int) error {
	i := s.index(id, kind)
	if i < 0 {
		return nil
	}
	s.items[i].Quantity = max(quantity, 1)
	return s.save(ctx)
}

// Increment raises the quantity of a line by one.
func (s *Store) Increment(ctx context.Context, id string, kind model.Kind) error {
	return s.adjust(ctx, id, kind, 1)
}

// Decrement lowers the quantity of a line by one, never below one.
func (s *Store) Decrement(ctx context.Context, id string, kind model.Kind) error {
	return s.adjust(ctx, id, kind, -1)
}

func (s *Store) adjust(ctx context.Context, id string, kind model.Kind, delta int) error {
	i := s.index(id, kind)
	if i < 0 {
		return nil
	}
	return s.UpdateQuantity(ctx, id, kind, s.items[i].Quantity+delta)
}

// UpdateDuration rewrites the duration of the rental line with the given id.
// Purchase lines are left untouched.
func (s *Store) UpdateDuration(ctx context.Context, id string, months int) error {
	if months < 1 {
		return model.ErrInvalidDuration
	}

	i := s.index(id, model.KindRent)
	if i < 0 {
		return nil
	}
	s.items[i].DurationMonths = months
	return s.save(ctx)
}

// Remove deletes a line. Removing an absent line is a no-op.
func (s *Store) Remove(ctx context.Context, id string, kind model.Kind) error {
	i := s.index(id, kind)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return s.save(ctx)
}

// Clear empties the cart.
func (s *Store) Clear(ctx context.Context) error {
	s.items = s.items[:0]
	s.logger.Debug().Msg("cart cleared")
	return s.save(ctx)
}

func (s *Store) index(id string, kind model.Kind) int {
	for i, item := range s.items {
		if item.SameLine(id, kind) {
			return i
		}
	}
	return -1
}

func (s *Store) save(ctx context.Context) error {
	if err := s.storage.Save(ctx, s.items); err != nil {
		s.logger.Error().Err(err).Int("lines", len(s.items)).Msg("failed to persist cart")
		return err
	}
	return nil
}
