package service

import (
	"context"
	"fmt"

	"rentlify/internal/checkout"
	"rentlify/internal/model"
	"rentlify/internal/orderapi"
	"rentlify/internal/repository"
	"rentlify/internal/session"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// OrderGateway is the order surface of the Order API.
type OrderGateway interface {
	checkout.OrderCreator
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListInvoices(ctx context.Context, orderID string) ([]model.Invoice, error)
}

// checkoutService implements CheckoutService.
type checkoutService struct {
	carts       *Carts
	sessions    *session.Registry
	productRepo repository.ProductRepository
	orders      OrderGateway
	submitter   *checkout.Submitter
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	carts *Carts,
	sessions *session.Registry,
	productRepo repository.ProductRepository,
	orders OrderGateway,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		carts:       carts,
		sessions:    sessions,
		productRepo: productRepo,
		orders:      orders,
		submitter:   checkout.NewSubmitter(orders, logger),
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// Submit fills blank contact fields from the logged-in user, validates every
// wizard step and places the order for either the rent-now item or the cart.
func (s *checkoutService) Submit(ctx context.Context, sessionID string, req CheckoutRequest) (*checkout.Result, error) {
	ctx = session.WithID(ctx, sessionID)

	defaults, err := s.sessions.Open(sessionID).ContactDefaults(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Str("session", sessionID).Msg("ignoring unreadable contact defaults")
	}
	form := req.Form.ApplyDefaults(defaults)

	if err := checkout.ValidateAll(form); err != nil {
		return nil, err
	}

	var direct []model.LineItem
	if req.RentNow != nil {
		item, err := s.rentNowItem(ctx, req.RentNow, form.DurationMonths)
		if err != nil {
			return nil, err
		}
		direct = []model.LineItem{item}
	}

	cartItems, err := s.carts.items(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return s.submitter.Submit(ctx, checkout.Submission{
		Key:       sessionID,
		Direct:    direct,
		CartItems: cartItems,
		Cart:      s.carts.clearer(sessionID),
		Form:      form,
	})
}

// rentNowItem prices a single rental from the catalogue. A missing duration
// falls back to the form's duration, then to the default.
func (s *checkoutService) rentNowItem(ctx context.Context, req *RentNowRequest, formMonths int) (model.LineItem, error) {
	if req.DurationMonths < 0 {
		return model.LineItem{}, model.ErrInvalidDuration
	}
	if req.Quantity < 0 {
		return model.LineItem{}, model.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return model.LineItem{}, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return model.LineItem{}, model.ErrProductNotFound
	}
	if !product.Offers(model.KindRent) {
		return model.LineItem{}, model.ErrProductUnavailable
	}

	months := req.DurationMonths
	if months == 0 {
		months = formMonths
	}

	item := product.LineItem(model.KindRent, months)
	item.Quantity = max(req.Quantity, 1)
	return item, nil
}

// Confirmation fetches the order and its invoices concurrently.
func (s *checkoutService) Confirmation(ctx context.Context, sessionID, orderID string) (*model.Confirmation, error) {
	ctx = session.WithID(ctx, sessionID)

	var (
		order    *model.Order
		invoices []model.Invoice
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		order, err = s.orders.GetOrder(gctx, orderID)
		return err
	})
	g.Go(func() error {
		var err error
		invoices, err = s.orders.ListInvoices(gctx, orderID)
		return err
	})

	if err := g.Wait(); err != nil {
		if orderapi.IsNotFound(err) {
			return nil, model.ErrOrderNotFound
		}
		s.logger.Error().Err(err).Str("order_id", orderID).Msg("failed to load order confirmation")
		return nil, err
	}

	return &model.Confirmation{Order: order, Invoices: invoices}, nil
}
