package store

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"luxe-storefront/internal/config"
	"luxe-storefront/internal/model"
	"luxe-storefront/internal/storage"
)

// SessionStore owns the two session singletons: the admin flag and the
// shopper profile. There are no tokens and no expiry; presence of the
// persisted flag is the entire authorization check, and only an explicit
// logout clears it.
type SessionStore struct {
	kv            storage.KV
	adminUsername string
	adminPassword string
	logger        zerolog.Logger
}

// NewSessionStore creates a session store over the given document store.
func NewSessionStore(kv storage.KV, auth config.AuthConfig, logger zerolog.Logger) *SessionStore {
	return &SessionStore{
		kv:            kv,
		adminUsername: auth.AdminUsername,
		adminPassword: auth.AdminPassword,
		logger:        logger.With().Str("store", "session").Logger(),
	}
}

// AdminLogin compares the supplied pair against the configured credentials
// and sets the admin flag on success.
func (s *SessionStore) AdminLogin(ctx context.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !userOK || !passOK {
		s.logger.Warn().Str("username", username).Msg("admin login rejected")
		return model.ErrInvalidCredentials
	}

	if err := storage.SetJSON(ctx, s.kv, storage.KeyAdminFlag, "true"); err != nil {
		return fmt.Errorf("failed to set admin flag: %w", err)
	}

	s.logger.Info().Str("username", username).Msg("admin logged in")

	return nil
}

// AdminLogout clears the admin flag.
func (s *SessionStore) AdminLogout(ctx context.Context) error {
	if err := s.kv.Remove(ctx, storage.KeyAdminFlag); err != nil {
		return fmt.Errorf("failed to clear admin flag: %w", err)
	}
	s.logger.Info().Msg("admin logged out")
	return nil
}

// IsAdminAuthenticated reports whether the admin flag is set. Storage
// failures read as unauthenticated.
func (s *SessionStore) IsAdminAuthenticated(ctx context.Context) bool {
	var flag string
	if err := storage.GetJSON(ctx, s.kv, storage.KeyAdminFlag, &flag); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Error().Err(err).Msg("failed to read admin flag")
		}
		return false
	}
	return flag == "true"
}

// SetUser stores the shopper profile delivered by the identity provider
// callback and sets the shopper flag.
func (s *SessionStore) SetUser(ctx context.Context, profile *model.UserProfile) error {
	if profile.Email == "" {
		return model.NewValidationError("User profile requires an email")
	}

	if err := storage.SetJSON(ctx, s.kv, storage.KeyCurrentUser, profile); err != nil {
		return fmt.Errorf("failed to save user profile: %w", err)
	}
	if err := storage.SetJSON(ctx, s.kv, storage.KeyUserFlag, "true"); err != nil {
		return fmt.Errorf("failed to set user flag: %w", err)
	}

	s.logger.Info().Str("email", profile.Email).Msg("shopper session started")

	return nil
}

// CurrentUser returns the stored shopper profile, or nil when no shopper
// session exists.
func (s *SessionStore) CurrentUser(ctx context.Context) (*model.UserProfile, error) {
	var profile model.UserProfile
	if err := storage.GetJSON(ctx, s.kv, storage.KeyCurrentUser, &profile); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		s.logger.Error().Err(err).Msg("failed to load user profile")
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	return &profile, nil
}

// UserLogout clears both the shopper flag and the profile.
func (s *SessionStore) UserLogout(ctx context.Context) error {
	if err := s.kv.Remove(ctx, storage.KeyUserFlag); err != nil {
		return fmt.Errorf("failed to clear user flag: %w", err)
	}
	if err := s.kv.Remove(ctx, storage.KeyCurrentUser); err != nil {
		return fmt.Errorf("failed to clear user profile: %w", err)
	}
	s.logger.Info().Msg("shopper logged out")
	return nil
}
