package service

import (
	"context"

	"rentlify/internal/checkout"
	"rentlify/internal/model"
	"rentlify/internal/pricing"
)

// ProductService defines operations for the product catalogue.
type ProductService interface {
	// GetAll retrieves all products with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)
}

// CartView is the cart contents with its price summary.
type CartView struct {
	Items   []model.LineItem `json:"items"`
	Summary pricing.Summary  `json:"summary"`
}

// AddItemRequest adds one unit of a product to the cart.
type AddItemRequest struct {
	ProductID      string     `json:"productId"`
	Kind           model.Kind `json:"kind"`
	DurationMonths int        `json:"durationMonths,omitempty"`
}

// UpdateItemRequest changes a cart line. Exactly one of Quantity, Delta or
// DurationMonths is applied, in that order of precedence.
type UpdateItemRequest struct {
	Kind           model.Kind `json:"kind"`
	Quantity       *int       `json:"quantity,omitempty"`
	Delta          *int       `json:"delta,omitempty"`
	DurationMonths *int       `json:"durationMonths,omitempty"`
}

// CartService defines operations on the cart of one session.
type CartService interface {
	// Get returns the cart with the cart page summary.
	Get(ctx context.Context, sessionID string) (*CartView, error)

	// AddItem adds a catalogue product under the given kind.
	AddItem(ctx context.Context, sessionID string, req AddItemRequest) (*CartView, error)

	// UpdateItem changes the quantity or rental duration of a line.
	UpdateItem(ctx context.Context, sessionID, productID string, req UpdateItemRequest) (*CartView, error)

	// RemoveItem deletes the (productID, kind) line.
	RemoveItem(ctx context.Context, sessionID, productID string, kind model.Kind) (*CartView, error)

	// Clear empties the cart.
	Clear(ctx context.Context, sessionID string) (*CartView, error)

	// CheckoutSummary returns the cart with the checkout page summary.
	CheckoutSummary(ctx context.Context, sessionID string) (*CartView, error)
}

// LoginRequest carries user credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionService defines operations on browser sessions.
type SessionService interface {
	// Create returns a new session id.
	Create(ctx context.Context) (string, error)

	// Login authenticates against the Order API and caches the user.
	Login(ctx context.Context, sessionID string, req LoginRequest) (*model.User, error)

	// Logout forgets the tokens and cached user.
	Logout(ctx context.Context, sessionID string) error

	// ContactDefaults returns checkout form defaults for the logged-in user.
	ContactDefaults(ctx context.Context, sessionID string) (model.ContactDefaults, error)
}

// RentNowRequest checks out a single product without touching the cart.
type RentNowRequest struct {
	ProductID      string `json:"productId"`
	DurationMonths int    `json:"durationMonths,omitempty"`
	Quantity       int    `json:"quantity,omitempty"`
}

// CheckoutRequest is a checkout form submission.
type CheckoutRequest struct {
	Form    checkout.Form   `json:"form"`
	RentNow *RentNowRequest `json:"rentNow,omitempty"`
}

// CheckoutService defines checkout operations.
type CheckoutService interface {
	// Submit validates the form and places the order.
	Submit(ctx context.Context, sessionID string, req CheckoutRequest) (*checkout.Result, error)

	// Confirmation returns an order with its invoices.
	Confirmation(ctx context.Context, sessionID, orderID string) (*model.Confirmation, error)
}
