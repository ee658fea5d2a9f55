package auth

import (
	"testing"
	"time"

	"smarthr/config"
	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClock struct{ now time.Time }

func (c *stubClock) Now() time.Time { return c.now }

func newTestJWTConfig() *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{AccessTokenTTL: 15 * time.Minute, RefreshTokenTTL: 7 * 24 * time.Hour}}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func newTestAccount() *entity.Account {
	return &entity.Account{ID: uuid.New(), Email: "user@example.com", Role: entity.RoleManager}
}

func TestJWTService_GenerateAndParse(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc, err := NewJWTService(newTestJWTConfig(), clock)
	require.NoError(t, err)

	account := newTestAccount()

	access, accessClaims, err := svc.Generate(account, entity.TokenTypeAccess)
	require.NoError(t, err)
	refresh, refreshClaims, err := svc.Generate(account, entity.TokenTypeRefresh)
	require.NoError(t, err)

	assert.NotEqual(t, accessClaims.TokenID, refreshClaims.TokenID)
	assert.Equal(t, clock.now.Add(15*time.Minute), accessClaims.ExpiresAt)
	assert.Equal(t, clock.now.Add(7*24*time.Hour), refreshClaims.ExpiresAt)

	parsed, err := svc.Parse(access, entity.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, account.ID, parsed.AccountID)
	assert.Equal(t, entity.RoleManager, parsed.Role)
	assert.Equal(t, accessClaims.TokenID, parsed.TokenID)

	parsed, err = svc.Parse(refresh, entity.TokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, refreshClaims.TokenID, parsed.TokenID)
	assert.Empty(t, parsed.Role)
}

func TestJWTService_RejectsCrossTypeUse(t *testing.T) {
	svc, err := NewJWTService(newTestJWTConfig(), &stubClock{now: time.Now()})
	require.NoError(t, err)

	refresh, _, err := svc.Generate(newTestAccount(), entity.TokenTypeRefresh)
	require.NoError(t, err)

	// Signed with the refresh key, so the access key cannot verify it.
	_, err = svc.Parse(refresh, entity.TokenTypeAccess)
	assert.True(t, errors.Is(err, service.ErrTokenMalformed))
}

func TestJWTService_Expired(t *testing.T) {
	clock := &stubClock{now: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	svc, err := NewJWTService(newTestJWTConfig(), clock)
	require.NoError(t, err)

	access, _, err := svc.Generate(newTestAccount(), entity.TokenTypeAccess)
	require.NoError(t, err)

	clock.now = clock.now.Add(16 * time.Minute)
	_, err = svc.Parse(access, entity.TokenTypeAccess)
	assert.True(t, errors.Is(err, service.ErrTokenExpired))
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	cfg := newTestJWTConfig()
	clock := &stubClock{now: time.Now()}
	svc, err := NewJWTService(cfg, clock)
	require.NoError(t, err)

	claims := jwt.MapClaims{
		"sub":  uuid.NewString(),
		"jti":  uuid.NewString(),
		"type": "access",
		"iat":  clock.now.Unix(),
		"exp":  clock.now.Add(time.Minute).Unix(),
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(cfg.SecretKey.Access))
	require.NoError(t, err)

	_, err = svc.Parse(forged, entity.TokenTypeAccess)
	assert.True(t, errors.Is(err, service.ErrTokenMalformed))

	_, err = svc.Parse("garbage", entity.TokenTypeAccess)
	assert.True(t, errors.Is(err, service.ErrTokenMalformed))
}

func TestNewJWTService_RequiresDistinctSecrets(t *testing.T) {
	cfg := newTestJWTConfig()
	cfg.SecretKey.Refresh = cfg.SecretKey.Access

	_, err := NewJWTService(cfg, &stubClock{})
	assert.Error(t, err)

	cfg.SecretKey.Access = ""
	_, err = NewJWTService(cfg, &stubClock{})
	assert.Error(t, err)
}

func TestSecretGenerator_UniqueURLSafe(t *testing.T) {
	gen := NewSecretGenerator()
	seen := make(map[string]struct{})
	for range 100 {
		v, err := gen.Generate()
		require.NoError(t, err)
		assert.Len(t, v, 43)
		assert.NotContains(t, v, "+")
		assert.NotContains(t, v, "/")
		_, dup := seen[v]
		assert.False(t, dup)
		seen[v] = struct{}{}
	}
}
