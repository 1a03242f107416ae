package checkout

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"rentlify/internal/model"
	"rentlify/internal/orderapi"

	"github.com/rs/zerolog"
)

// User-visible messages for failed submissions.
const (
	MsgOrderFailed     = "Failed to place order. Please try again."
	MsgInventoryFailed = "Some items are no longer available. Please clear your cart and add them again."
)

// OrderCreator submits an order to the Order API.
type OrderCreator interface {
	CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error)
}

// CartClearer empties the cart after a cart-originated order.
type CartClearer interface {
	Clear(ctx context.Context) error
}

// Submission is one checkout attempt.
type Submission struct {
	// Key identifies the session for the in-flight guard.
	Key string
	// Direct holds "rent now" items that bypass the cart.
	Direct []model.LineItem
	// CartItems is the current cart contents.
	CartItems []model.LineItem
	// Cart is cleared after a successful cart-originated order.
	Cart CartClearer
	Form Form
}

// Result is a successful submission.
type Result struct {
	OrderID string       `json:"orderId"`
	Order   *model.Order `json:"order"`
	Source  Source       `json:"source"`
}

// SubmissionError is a failed order submission with a message fit for display.
type SubmissionError struct {
	Message   string
	Inventory bool
	Err       error
}

func (e *SubmissionError) Error() string {
	return e.Message
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// Submitter places orders, allowing one in-flight submission per session.
type Submitter struct {
	orders   OrderCreator
	inflight sync.Map
	now      func() time.Time
	logger   zerolog.Logger
}

// NewSubmitter creates a Submitter.
func NewSubmitter(orders OrderCreator, logger zerolog.Logger) *Submitter {
	return &Submitter{
		orders: orders,
		now:    time.Now,
		logger: logger.With().Str("component", "checkout").Logger(),
	}
}

// WithClock overrides the clock used for rental start dates.
func (s *Submitter) WithClock(now func() time.Time) *Submitter {
	s.now = now
	return s
}

// Submit resolves the items, sends the order and clears the cart when the
// items came from it. A second call for the same key while one is
// outstanding fails with model.ErrSubmitInProgress. On failure the cart is
// left untouched.
func (s *Submitter) Submit(ctx context.Context, sub Submission) (*Result, error) {
	items, source, err := ResolveItems(sub.Direct, sub.CartItems)
	if err != nil {
		return nil, err
	}

	if _, busy := s.inflight.LoadOrStore(sub.Key, struct{}{}); busy {
		s.logger.Warn().Str("session", sub.Key).Msg("ignoring duplicate checkout submission")
		return nil, model.ErrSubmitInProgress
	}
	defer s.inflight.Delete(sub.Key)

	req, err := BuildOrderRequest(items, sub.Form, s.now())
	if err != nil {
		return nil, err
	}

	order, err := s.orders.CreateOrder(ctx, req)
	if err != nil {
		if errors.Is(err, model.ErrSessionExpired) {
			return nil, err
		}
		subErr := describeFailure(err)
		s.logger.Warn().
			Err(err).
			Str("source", string(source)).
			Bool("inventory", subErr.Inventory).
			Msg("order submission failed")
		return nil, subErr
	}

	if source == SourceCart && sub.Cart != nil {
		if err := sub.Cart.Clear(ctx); err != nil {
			// the order exists; a stale cart is the lesser problem
			s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to clear cart after order")
		}
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("source", string(source)).
		Int("item_count", len(items)).
		Msg("order placed")

	return &Result{OrderID: order.ID, Order: order, Source: source}, nil
}

func describeFailure(err error) *SubmissionError {
	var apiErr *orderapi.APIError
	if !errors.As(err, &apiErr) || apiErr.Message == "" {
		return &SubmissionError{Message: MsgOrderFailed, Err: err}
	}

	lower := strings.ToLower(apiErr.Message)
	if strings.Contains(lower, "product not found") || strings.Contains(lower, "not available") {
		return &SubmissionError{
			Message:   strings.TrimRight(apiErr.Message, ". ") + ". " + MsgInventoryFailed,
			Inventory: true,
			Err:       err,
		}
	}
	return &SubmissionError{Message: apiErr.Message, Err: err}
}
