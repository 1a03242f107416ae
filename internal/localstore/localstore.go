// Package localstore keeps per-session key/value state on the server in
// place of browser local storage.
package localstore

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned by Get when a key has no value.
var ErrNotFound = errors.New("key not found")

// Store is a flat string-keyed byte store.
type Store interface {
	// Get returns the value for key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value for key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// scoped prefixes every key with a namespace.
type scoped struct {
	store  Store
	prefix string
}

// Scoped returns a view of store where all keys live under namespace.
func Scoped(store Store, namespace string) Store {
	return &scoped{
		store:  store,
		prefix: namespace + ":",
	}
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, error) {
	return s.store.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, value []byte) error {
	return s.store.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	return s.store.Delete(ctx, full...)
}

// Namespace returns the session namespace used for a session id.
func Namespace(sessionID string) string {
	return "session:" + strings.ToLower(sessionID)
}
