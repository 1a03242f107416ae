// Package orderapi is the REST client for the Order API that persists
// orders, issues invoices and authenticates users.
package orderapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentlify/internal/model"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxResponseBytes = 1 << 20

// TokenStore holds the bearer tokens of the calling session.
type TokenStore interface {
	Tokens(ctx context.Context) (model.Tokens, error)
	SetTokens(ctx context.Context, tokens model.Tokens) error
	Clear(ctx context.Context) error
}

// APIError is a non-successful response from the Order API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("order api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("order api returned status %d: %s", e.StatusCode, e.Message)
}

// envelope is the response wrapper used by every Order API endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func (e *envelope) message() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// NewHTTPClient returns the outbound client, traced with otelhttp.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// Client calls the Order API on behalf of one session.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore
	breaker *gobreaker.CircuitBreaker[*http.Response]
	logger  zerolog.Logger
}

// New creates a client for baseURL using the session's token store.
func New(baseURL string, httpClient *http.Client, tokens TokenStore, logger zerolog.Logger) *Client {
	logger = logger.With().Str("component", "order-api").Logger()
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		breaker: newBreaker(DefaultBreakerFailures, DefaultBreakerCooldown, logger),
		logger:  logger,
	}
}

// CreateOrder submits an order and returns the persisted order.
func (c *Client) CreateOrder(ctx context.Context, req *model.OrderRequest) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodPost, "/orders", req, &order); err != nil {
		return nil, err
	}
	c.logger.Info().
		Str("order_id", order.ID).
		Int("item_count", len(req.Items)).
		Msg("order created")
	return &order, nil
}

// GetOrder fetches a persisted order.
func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListInvoices fetches the per-vendor invoices of an order.
func (c *Client) ListInvoices(ctx context.Context, orderID string) ([]model.Invoice, error) {
	q := url.Values{"orderId": []string{orderID}}
	var invoices []model.Invoice
	if err := c.do(ctx, http.MethodGet, "/invoices?"+q.Encode(), nil, &invoices); err != nil {
		return nil, err
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	return invoices, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	resp, err := c.send(ctx, method, path, payload, true)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(path) {
		drain(resp)
		c.logger.Debug().Str("path", path).Msg("access token rejected, refreshing")

		if err := c.refresh(ctx); err != nil {
			return err
		}
		resp, err = c.send(ctx, method, path, payload, true)
		if err != nil {
			return err
		}
	}

	return decode(resp, out)
}

func (c *Client) send(ctx context.Context, method, path string, payload []byte, withAuth bool) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if withAuth {
		tokens, err := c.tokens.Tokens(ctx)
		if err != nil {
			return nil, err
		}
		if tokens.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
		}
	}

	resp, err := c.execute(req)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil, err
		}
		c.logger.Error().Err(err).Str("method", method).Str("path", path).Msg("order api request failed")
		return nil, fmt.Errorf("order api request failed: %w", err)
	}
	return resp, nil
}

func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read order api response: %w", err)
	}

	var env envelope
	parseErr := json.Unmarshal(data, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if parseErr == nil {
			apiErr.Message = env.message()
		}
		return apiErr
	}
	if parseErr != nil {
		return fmt.Errorf("failed to decode order api response: %w", parseErr)
	}
	if !env.Success {
		return &APIError{StatusCode: resp.StatusCode, Message: env.message()}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode order api data: %w", err)
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	resp.Body.Close()
}

func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/login") || strings.HasPrefix(path, "/auth/refresh-tokens")
}

// IsNotFound reports whether err is a 404 from the Order API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
