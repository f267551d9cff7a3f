package service

import (
	"testing"
	"time"

	"taraas/config"
	"taraas/internal/auth"
	"taraas/internal/domain"
	"taraas/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	cfg := &config.Config{
		JWT: config.JWTConfig{
			AccessSecret:  "test-access-secret",
			RefreshSecret: "test-refresh-secret",
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 24 * time.Hour,
			Issuer:        "taraas-test",
		},
	}
	return NewAuthService(cfg, repository.NewCustomerRepository(newTestDB(t)))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)

	customer, access, refresh, err := svc.Register("Asha", "asha@example.com", "supersecret", "Bangalore")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, customer.Role)
	assert.NotEqual(t, "supersecret", customer.PasswordHash)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	_, _, _, err = svc.Register("Asha Again", "asha@example.com", "otherpassword", "")
	assert.ErrorIs(t, err, ErrEmailExists)

	_, _, _, err = svc.Login("asha@example.com", "wrongwrong")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	_, _, _, err = svc.Login("nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCreds)

	got, access, _, err := svc.Login("asha@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, got.ID)

	claims, err := auth.ParseAccessToken(&svc.cfg.JWT, access)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, claims.CustomerID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestRefresh(t *testing.T) {
	svc := newAuthService(t)

	customer, _, refresh, err := svc.Register("Asha", "asha@example.com", "supersecret", "")
	require.NoError(t, err)

	access, newRefresh, err := svc.Refresh(refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, newRefresh)

	claims, err := auth.ParseAccessToken(&svc.cfg.JWT, access)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, claims.CustomerID)

	_, _, err = svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
