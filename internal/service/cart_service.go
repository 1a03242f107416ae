package service

import (
	"context"
	"fmt"

	"rentlify/internal/cart"
	"rentlify/internal/model"
	"rentlify/internal/pricing"
	"rentlify/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartService implements CartService.
type cartService struct {
	carts          *Carts
	productRepo    repository.ProductRepository
	deliveryCharge decimal.Decimal
	logger         zerolog.Logger
}

// NewCartService creates a new cart service. Prices always come from the
// product repository, never from the client.
func NewCartService(
	carts *Carts,
	productRepo repository.ProductRepository,
	deliveryCharge decimal.Decimal,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		carts:          carts,
		productRepo:    productRepo,
		deliveryCharge: deliveryCharge,
		logger:         logger.With().Str("service", "cart").Logger(),
	}
}

func (s *cartService) view(store *cart.Store) *CartView {
	items := store.Items()
	return &CartView{
		Items:   items,
		Summary: pricing.CartSummary(items, s.deliveryCharge),
	}
}

// Get returns the cart with the cart page summary.
func (s *cartService) Get(ctx context.Context, sessionID string) (*CartView, error) {
	var out *CartView
	err := s.carts.with(ctx, sessionID, func(store *cart.Store) error {
		out = s.view(store)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return out, nil
}

// AddItem resolves the product and adds one unit under req.Kind.
func (s *cartService) AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*CartView, error) {
	if !req.Kind.Valid() {
		return nil, model.ErrInvalidKind
	}
	if req.DurationMonths < 0 {
		return nil, model.ErrInvalidDuration
	}
	if req.Kind == model.KindRent && req.DurationMonths != 0 && !model.IsCartDuration(req.DurationMonths) {
		return nil, model.ErrCartDuration
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to look up product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	if !product.Offers(req.Kind) {
		s.logger.Debug().
			Str("product_id", product.ID).
			Str("kind", string(req.Kind)).
			Msg("product not offered for kind")
		return nil, model.ErrProductUnavailable
	}

	item := product.LineItem(req.Kind, req.DurationMonths)

	var out *CartView
	err = s.carts.with(ctx, sessionID, func(store *cart.Store) error {
		if err := store.Add(ctx, item); err != nil {
			return err
		}
		out = s.view(store)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("product_id", item.ID).
		Str("kind", string(item.Kind)).
		Int("lines", len(out.Items)).
		Msg("item added to cart")

	return out, nil
}

// UpdateItem applies a quantity, a ±1 step or a new rental duration.
func (s *cartService) UpdateItem(ctx context.Context, sessionID, productID string, req UpdateItemRequest) (*CartView, error) {
	var apply func(*cart.Store) error

	switch {
	case req.Quantity != nil:
		if !req.Kind.Valid() {
			return nil, model.ErrInvalidKind
		}
		if *req.Quantity < 1 {
			return nil, model.ErrInvalidQuantity
		}
		q := *req.Quantity
		apply = func(store *cart.Store) error { return store.UpdateQuantity(ctx, productID, req.Kind, q) }
	case req.Delta != nil:
		if !req.Kind.Valid() {
			return nil, model.ErrInvalidKind
		}
		switch *req.Delta {
		case 1:
			apply = func(store *cart.Store) error { return store.Increment(ctx, productID, req.Kind) }
		case -1:
			apply = func(store *cart.Store) error { return store.Decrement(ctx, productID, req.Kind) }
		default:
			return nil, model.ErrInvalidQuantity
		}
	case req.DurationMonths != nil:
		months := *req.DurationMonths
		if months < 1 {
			return nil, model.ErrInvalidDuration
		}
		if !model.IsCartDuration(months) {
			return nil, model.ErrCartDuration
		}
		apply = func(store *cart.Store) error { return store.UpdateDuration(ctx, productID, months) }
	default:
		return nil, model.NewDomainError(model.ErrCodeMissingField, "One of quantity, delta or durationMonths is required")
	}

	var out *CartView
	err := s.carts.with(ctx, sessionID, func(store *cart.Store) error {
		if err := apply(store); err != nil {
			return err
		}
		out = s.view(store)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RemoveItem deletes the (productID, kind) line.
func (s *cartService) RemoveItem(ctx context.Context, sessionID, productID string, kind model.Kind) (*CartView, error) {
	if !kind.Valid() {
		return nil, model.ErrInvalidKind
	}

	var out *CartView
	err := s.carts.with(ctx, sessionID, func(store *cart.Store) error {
		if err := store.Remove(ctx, productID, kind); err != nil {
			return err
		}
		out = s.view(store)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context, sessionID string) (*CartView, error) {
	var out *CartView
	err := s.carts.with(ctx, sessionID, func(store *cart.Store) error {
		if err := store.Clear(ctx); err != nil {
			return err
		}
		out = s.view(store)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CheckoutSummary returns the cart priced for the checkout page, where
// delivery is free.
func (s *cartService) CheckoutSummary(ctx context.Context, sessionID string) (*CartView, error) {
	var out *CartView
	err := s.carts.with(ctx, sessionID, func(store *cart.Store) error {
		items := store.Items()
		out = &CartView{Items: items, Summary: pricing.CheckoutSummary(items)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	return out, nil
}
