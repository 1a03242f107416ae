package service

import (
	"context"
	"hash/fnv"
	"sync"

	"rentlify/internal/cart"
	"rentlify/internal/model"
	"rentlify/internal/session"

	"github.com/rs/zerolog"
)

const cartStripes = 64

// Carts opens session carts and serialises mutations per session.
type Carts struct {
	sessions *session.Registry
	stripes  [cartStripes]sync.Mutex
	logger   zerolog.Logger
}

func NewCarts(sessions *session.Registry, logger zerolog.Logger) *Carts {
	return &Carts{
		sessions: sessions,
		logger:   logger,
	}
}

func (c *Carts) lock(sessionID string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	mu := &c.stripes[h.Sum32()%cartStripes]
	mu.Lock()
	return mu.Unlock
}

// with runs fn against the freshly loaded cart of a session while holding
// the session's stripe lock.
func (c *Carts) with(ctx context.Context, sessionID string, fn func(*cart.Store) error) error {
	defer c.lock(sessionID)()

	store, err := cart.Open(ctx,
		cart.NewLocalStorage(c.sessions.Store(sessionID)),
		c.logger.With().Str("session", sessionID).Logger(),
	)
	if err != nil {
		return err
	}
	return fn(store)
}

// clearer binds a session cart to checkout.CartClearer.
func (c *Carts) clearer(sessionID string) *sessionCart {
	return &sessionCart{carts: c, sessionID: sessionID}
}

type sessionCart struct {
	carts     *Carts
	sessionID string
}

func (s *sessionCart) Clear(ctx context.Context) error {
	return s.carts.with(ctx, s.sessionID, func(store *cart.Store) error {
		return store.Clear(ctx)
	})
}

// items returns a snapshot of the session's cart lines.
func (c *Carts) items(ctx context.Context, sessionID string) ([]model.LineItem, error) {
	var out []model.LineItem
	err := c.with(ctx, sessionID, func(store *cart.Store) error {
		out = store.Items()
		return nil
	})
	return out, err
}
