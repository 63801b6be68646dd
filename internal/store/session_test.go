package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe-storefront/internal/config"
	"luxe-storefront/internal/model"
	"luxe-storefront/internal/storage"
)

func newSessions(t *testing.T) *SessionStore {
	t.Helper()
	auth := config.AuthConfig{AdminUsername: "admin", AdminPassword: "admin123"}
	return NewSessionStore(storage.NewMemory(0, zerolog.Nop()), auth, zerolog.Nop())
}

func TestAdminLogin(t *testing.T) {
	ctx := context.Background()
	sessions := newSessions(t)

	assert.False(t, sessions.IsAdminAuthenticated(ctx))

	tests := []struct {
		name     string
		username string
		password string
		ok       bool
	}{
		{name: "Success", username: "admin", password: "admin123", ok: true},
		{name: "Wrong password", username: "admin", password: "admin124", ok: false},
		{name: "Wrong username", username: "root", password: "admin123", ok: false},
		{name: "Empty pair", username: "", password: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := sessions.AdminLogin(ctx, tt.username, tt.password)
			if tt.ok {
				require.NoError(t, err)
				assert.True(t, sessions.IsAdminAuthenticated(ctx))
				require.NoError(t, sessions.AdminLogout(ctx))
				return
			}
			assert.ErrorIs(t, err, model.ErrInvalidCredentials)
			assert.False(t, sessions.IsAdminAuthenticated(ctx))
		})
	}
}

func TestAdminLogout(t *testing.T) {
	ctx := context.Background()
	sessions := newSessions(t)

	require.NoError(t, sessions.AdminLogin(ctx, "admin", "admin123"))
	require.NoError(t, sessions.AdminLogout(ctx))
	assert.False(t, sessions.IsAdminAuthenticated(ctx))

	// Logging out twice is harmless.
	assert.NoError(t, sessions.AdminLogout(ctx))
}

func TestShopperSession(t *testing.T) {
	ctx := context.Background()
	sessions := newSessions(t)

	// No session yet.
	profile, err := sessions.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)

	in := model.UserProfile{Name: "Ada", Email: "ada@example.com", Picture: "https://example.com/ada.png"}
	require.NoError(t, sessions.SetUser(ctx, &in))

	profile, err = sessions.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, in, *profile)

	require.NoError(t, sessions.UserLogout(ctx))

	profile, err = sessions.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestSetUserRequiresEmail(t *testing.T) {
	ctx := context.Background()
	sessions := newSessions(t)

	err := sessions.SetUser(ctx, &model.UserProfile{Name: "Ada"})
	var derr *model.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, model.ErrCodeValidation, derr.Code)
}
