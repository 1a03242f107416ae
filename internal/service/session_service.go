package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"rentlify/internal/model"
	"rentlify/internal/session"

	"github.com/rs/zerolog"
)

// Authenticator is the auth surface of the Order API.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*model.User, error)
	Me(ctx context.Context) (*model.User, error)
}

// sessionService implements SessionService.
type sessionService struct {
	sessions *session.Registry
	auth     Authenticator
	logger   zerolog.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(sessions *session.Registry, auth Authenticator, logger zerolog.Logger) SessionService {
	return &sessionService{
		sessions: sessions,
		auth:     auth,
		logger:   logger.With().Str("service", "session").Logger(),
	}
}

// Create returns a new session id.
func (s *sessionService) Create(ctx context.Context) (string, error) {
	id := session.NewID()
	s.logger.Debug().Str("session", id).Msg("session created")
	return id, nil
}

// Login authenticates and caches the user for checkout prefill.
func (s *sessionService) Login(ctx context.Context, sessionID string, req LoginRequest) (*model.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Email and password are required")
	}

	ctx = session.WithID(ctx, sessionID)
	user, err := s.auth.Login(ctx, email, req.Password)
	if err != nil {
		s.logger.Warn().Err(err).Str("session", sessionID).Msg("login failed")
		return nil, err
	}

	if err := s.sessions.Open(sessionID).SetUser(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("session", sessionID).Msg("failed to cache user")
		return nil, fmt.Errorf("failed to cache user: %w", err)
	}

	s.logger.Info().Str("session", sessionID).Str("user_id", user.ID).Msg("user logged in")

	return user, nil
}

// Logout forgets the tokens and cached user. The cart is kept.
func (s *sessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Open(sessionID).Clear(ctx); err != nil {
		s.logger.Error().Err(err).Str("session", sessionID).Msg("failed to clear session")
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// ContactDefaults returns the cached user's contact fields. When only the
// tokens are known the user is fetched once and cached.
func (s *sessionService) ContactDefaults(ctx context.Context, sessionID string) (model.ContactDefaults, error) {
	sess := s.sessions.Open(sessionID)

	defaults, err := sess.ContactDefaults(ctx)
	if err != nil {
		return model.ContactDefaults{}, fmt.Errorf("failed to read session user: %w", err)
	}
	if defaults != (model.ContactDefaults{}) {
		return defaults, nil
	}

	tokens, err := sess.Tokens(ctx)
	if err != nil {
		return model.ContactDefaults{}, fmt.Errorf("failed to read session tokens: %w", err)
	}
	if tokens.AccessToken == "" {
		return model.ContactDefaults{}, nil
	}

	user, err := s.auth.Me(session.WithID(ctx, sessionID))
	if err != nil {
		if !errors.Is(err, model.ErrSessionExpired) {
			s.logger.Warn().Err(err).Str("session", sessionID).Msg("failed to fetch current user")
		}
		return model.ContactDefaults{}, nil
	}

	if err := sess.SetUser(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("session", sessionID).Msg("failed to cache user")
	}

	return model.ContactDefaults{Name: user.Name, Email: user.Email, Phone: user.Phone}, nil
}
