// Package session keeps the bearer tokens and cached user of one browser
// session.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"rentlify/internal/localstore"
	"rentlify/internal/model"
)

// Local store keys. The two tokens live under separate keys.
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
	UserKey         = "user"
)

// Session reads and writes session state in a session-scoped local store.
type Session struct {
	store localstore.Store
}

// New wraps a session-scoped local store.
func New(store localstore.Store) *Session {
	return &Session{store: store}
}

// Tokens returns the stored token pair. Missing tokens are empty strings.
func (s *Session) Tokens(ctx context.Context) (model.Tokens, error) {
	access, err := s.get(ctx, AccessTokenKey)
	if err != nil {
		return model.Tokens{}, err
	}
	refresh, err := s.get(ctx, RefreshTokenKey)
	if err != nil {
		return model.Tokens{}, err
	}
	return model.Tokens{AccessToken: string(access), RefreshToken: string(refresh)}, nil
}

// SetTokens stores a new token pair. An empty refresh token keeps the old one.
func (s *Session) SetTokens(ctx context.Context, tokens model.Tokens) error {
	if err := s.store.Set(ctx, AccessTokenKey, []byte(tokens.AccessToken)); err != nil {
		return fmt.Errorf("failed to store access token: %w", err)
	}
	if tokens.RefreshToken == "" {
		return nil
	}
	if err := s.store.Set(ctx, RefreshTokenKey, []byte(tokens.RefreshToken)); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Clear removes tokens and the cached user.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, AccessTokenKey, RefreshTokenKey, UserKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// User returns the cached user, or nil when nobody is logged in.
func (s *Session) User(ctx context.Context) (*model.User, error) {
	data, err := s.get(ctx, UserKey)
	if err != nil || data == nil {
		return nil, err
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		// a bad cache entry is treated as logged out
		return nil, nil
	}
	return &user, nil
}

// SetUser caches the authenticated user.
func (s *Session) SetUser(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.store.Set(ctx, UserKey, data); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	return nil
}

// ContactDefaults returns the checkout contact fields for the cached user.
func (s *Session) ContactDefaults(ctx context.Context) (model.ContactDefaults, error) {
	user, err := s.User(ctx)
	if err != nil || user == nil {
		return model.ContactDefaults{}, err
	}
	return model.ContactDefaults{
		Name:  user.Name,
		Email: user.Email,
		Phone: user.Phone,
	}, nil
}

func (s *Session) get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.store.Get(ctx, key)
	if errors.Is(err, localstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return data, nil
}
