package session

import (
	"context"
	"strings"

	"rentlify/internal/localstore"
	"rentlify/internal/model"

	"github.com/google/uuid"
)

type ctxKey struct{}

// WithID returns a context carrying the session id.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IDFromContext returns the session id carried by ctx.
func IDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	return id, ok && id != ""
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ParseID validates a client-supplied session id and returns it in
// canonical form.
func ParseID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", model.ErrSessionRequired
	}
	return id.String(), nil
}

// Registry hands out sessions over one shared local store. It also
// implements orderapi.TokenStore for the session carried in the context.
type Registry struct {
	store localstore.Store
}

// NewRegistry creates a registry over the shared store.
func NewRegistry(store localstore.Store) *Registry {
	return &Registry{store: store}
}

// Store returns the session-scoped local store.
func (r *Registry) Store(id string) localstore.Store {
	return localstore.Scoped(r.store, localstore.Namespace(id))
}

// Open returns the session for id.
func (r *Registry) Open(id string) *Session {
	return New(r.Store(id))
}

// FromContext returns the session for the id carried by ctx.
func (r *Registry) FromContext(ctx context.Context) (*Session, error) {
	id, ok := IDFromContext(ctx)
	if !ok {
		return nil, model.ErrSessionRequired
	}
	return r.Open(id), nil
}

func (r *Registry) Tokens(ctx context.Context) (model.Tokens, error) {
	s, err := r.FromContext(ctx)
	if err != nil {
		return model.Tokens{}, err
	}
	return s.Tokens(ctx)
}

func (r *Registry) SetTokens(ctx context.Context, tokens model.Tokens) error {
	s, err := r.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.SetTokens(ctx, tokens)
}

func (r *Registry) Clear(ctx context.Context) error {
	s, err := r.FromContext(ctx)
	if err != nil {
		return err
	}
	return s.Clear(ctx)
}
