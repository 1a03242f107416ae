package orderapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"rentlify/internal/model"
)

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LoginResult is the data returned by a successful login.
type LoginResult struct {
	User         model.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

// Login authenticates and stores the issued tokens in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	var result LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &result)
	if err != nil {
		return nil, err
	}

	if err := c.tokens.SetTokens(ctx, model.Tokens{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	}); err != nil {
		return nil, err
	}

	c.logger.Info().Str("user_id", result.User.ID).Msg("user logged in")
	return &result.User, nil
}

// Me returns the user behind the current access token.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// refresh exchanges the refresh token for a new pair. Any failure ends the
// session: the tokens are cleared and model.ErrSessionExpired is returned.
func (c *Client) refresh(ctx context.Context) error {
	tokens, err := c.tokens.Tokens(ctx)
	if err != nil {
		return err
	}
	if tokens.RefreshToken == "" {
		return c.expire(ctx, errors.New("no refresh token"))
	}

	payload, err := json.Marshal(refreshRequest{RefreshToken: tokens.RefreshToken})
	if err != nil {
		return fmt.Errorf("failed to encode refresh request: %w", err)
	}
	resp, err := c.send(ctx, http.MethodPost, "/auth/refresh-tokens", payload, false)
	if err != nil {
		return c.expire(ctx, err)
	}

	var fresh model.Tokens
	if err := decode(resp, &fresh); err != nil {
		return c.expire(ctx, err)
	}
	if fresh.AccessToken == "" {
		return c.expire(ctx, errors.New("refresh returned no access token"))
	}

	if err := c.tokens.SetTokens(ctx, fresh); err != nil {
		return err
	}
	c.logger.Debug().Msg("access token refreshed")
	return nil
}

func (c *Client) expire(ctx context.Context, cause error) error {
	c.logger.Warn().Err(cause).Msg("token refresh failed, clearing session")
	if err := c.tokens.Clear(ctx); err != nil {
		c.logger.Error().Err(err).Msg("failed to clear session tokens")
	}
	return model.ErrSessionExpired
}
