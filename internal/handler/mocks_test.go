package handler

import (
	"context"
	"net/http"

	"rentlify/internal/checkout"
	"rentlify/internal/model"
	"rentlify/internal/service"
	"rentlify/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

const testSessionID = "5f0c6a2e-8d1b-4c3a-9e7f-1a2b3c4d5e6f"

// MockProductService is a mock implementation of ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetAll(ctx context.Context, limit, offset int) ([]model.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) view(args mock.Arguments) (*service.CartView, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CartView), args.Error(1)
}

func (m *MockCartService) Get(ctx context.Context, sessionID string) (*service.CartView, error) {
	return m.view(m.Called(ctx, sessionID))
}

func (m *MockCartService) AddItem(ctx context.Context, sessionID string, req service.AddItemRequest) (*service.CartView, error) {
	return m.view(m.Called(ctx, sessionID, req))
}

func (m *MockCartService) UpdateItem(ctx context.Context, sessionID, productID string, req service.UpdateItemRequest) (*service.CartView, error) {
	return m.view(m.Called(ctx, sessionID, productID, req))
}

func (m *MockCartService) RemoveItem(ctx context.Context, sessionID, productID string, kind model.Kind) (*service.CartView, error) {
	return m.view(m.Called(ctx, sessionID, productID, kind))
}

func (m *MockCartService) Clear(ctx context.Context, sessionID string) (*service.CartView, error) {
	return m.view(m.Called(ctx, sessionID))
}

func (m *MockCartService) CheckoutSummary(ctx context.Context, sessionID string) (*service.CartView, error) {
	return m.view(m.Called(ctx, sessionID))
}

// MockSessionService is a mock implementation of SessionService.
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) Create(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockSessionService) Login(ctx context.Context, sessionID string, req service.LoginRequest) (*model.User, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockSessionService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockSessionService) ContactDefaults(ctx context.Context, sessionID string) (model.ContactDefaults, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(model.ContactDefaults), args.Error(1)
}

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Submit(ctx context.Context, sessionID string, req service.CheckoutRequest) (*checkout.Result, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkout.Result), args.Error(1)
}

func (m *MockCheckoutService) Confirmation(ctx context.Context, sessionID, orderID string) (*model.Confirmation, error) {
	args := m.Called(ctx, sessionID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Confirmation), args.Error(1)
}

// withSession attaches a session id the way middleware.RequireSession does.
func withSession(r *http.Request) *http.Request {
	return r.WithContext(session.WithID(r.Context(), testSessionID))
}

// withURLParam sets a chi URL parameter on a request built outside the router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
