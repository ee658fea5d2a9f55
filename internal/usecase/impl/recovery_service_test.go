package impl

import (
	"context"
	"testing"
	"time"

	deliverycontext "smarthr/internal/delivery/context"
	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugRecovery(env *testEnv) *recoveryService {
	env.cfg.Auth.ExposeDebugTokens = true

	return env.recoveryService()
}

func TestRecoveryService_PasswordResetRoundTrip(t *testing.T) {
	env := newTestEnv()
	srv := newDebugRecovery(env)
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)
	ctx := context.Background()

	out, err := srv.RequestPasswordReset(ctx, "Alice@Example.com")
	require.NoError(t, err)
	require.Equal(t, "secret-1", out.DebugToken)

	mails := env.mail.messages()
	require.Len(t, mails, 1)
	assert.Contains(t, mails[0].Body, "https://hr.example.com/reset-password?token=secret-1")

	require.NoError(t, srv.ConfirmPasswordReset(ctx, out.DebugToken, "Brand-New-Pass-9"))
	assert.Equal(t, hashed("Brand-New-Pass-9"), env.store.account(alice.ID).PasswordHash)

	err = srv.ConfirmPasswordReset(ctx, out.DebugToken, "Another-New-Pass-9")
	require.ErrorIs(t, err, domainerrors.ErrEphemeralTokenInvalid)
	assert.Equal(t, map[string]string{"reason": errEphemeralUsed.Error()}, errorDetails(t, err))
	assert.Equal(t, hashed("Brand-New-Pass-9"), env.store.account(alice.ID).PasswordHash)
}

func TestRecoveryService_RequestReusesActiveToken(t *testing.T) {
	env := newTestEnv()
	srv := newDebugRecovery(env)
	env.store.seedAccount("alice@example.com", entity.RoleEmployee)
	ctx := context.Background()

	first, err := srv.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)

	env.clock.Advance(30 * time.Minute)
	second, err := srv.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.DebugToken, second.DebugToken)

	env.clock.Advance(31 * time.Minute)
	third, err := srv.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, first.DebugToken, third.DebugToken)

	env.store.mu.Lock()
	assert.Len(t, env.store.ephemeral, 1)
	env.store.mu.Unlock()
}

func TestRecoveryService_ExpiredResetToken(t *testing.T) {
	env := newTestEnv()
	srv := newDebugRecovery(env)
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)
	ctx := context.Background()

	out, err := srv.RequestPasswordReset(ctx, alice.Email)
	require.NoError(t, err)

	env.clock.Advance(time.Hour + time.Second)
	err = srv.ConfirmPasswordReset(ctx, out.DebugToken, "Brand-New-Pass-9")
	require.ErrorIs(t, err, domainerrors.ErrEphemeralTokenInvalid)
	assert.Equal(t, map[string]string{"reason": errEphemeralExpired.Error()}, errorDetails(t, err))
	assert.Equal(t, hashed(correctPassword), env.store.account(alice.ID).PasswordHash)
}

func TestRecoveryService_UnknownResetToken(t *testing.T) {
	env := newTestEnv()
	srv := env.recoveryService()

	err := srv.ConfirmPasswordReset(context.Background(), "never-issued", "Brand-New-Pass-9")
	require.ErrorIs(t, err, domainerrors.ErrEphemeralTokenInvalid)

	appErr, ok := domainerrors.AsAppError(err)
	require.True(t, ok)
	assert.False(t, appErr.PublicDetails())
}

func TestRecoveryService_WeakPasswordKeepsToken(t *testing.T) {
	env := newTestEnv()
	srv := newDebugRecovery(env)
	env.store.seedAccount("alice@example.com", entity.RoleEmployee)
	ctx := context.Background()

	out, err := srv.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)

	require.ErrorIs(t, srv.ConfirmPasswordReset(ctx, out.DebugToken, "short"), domainerrors.ErrWeakPassword)
	require.NoError(t, srv.ConfirmPasswordReset(ctx, out.DebugToken, "Brand-New-Pass-9"))
}

func TestRecoveryService_UnknownEmailIsDelayed(t *testing.T) {
	env := newTestEnv()
	srv := env.recoveryService()

	var slept []time.Duration
	srv.sleep = func(_ context.Context, d time.Duration) {
		slept = append(slept, d)
	}

	out, err := srv.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, out.DebugToken)
	assert.Empty(t, env.mail.messages())

	out, err = srv.RequestEmailVerification(context.Background(), "ghost@example.com")
	require.NoError(t, err)
	assert.Empty(t, out.DebugToken)

	require.Len(t, slept, 2)
	for _, d := range slept {
		assert.GreaterOrEqual(t, d, 100*time.Millisecond)
		assert.LessOrEqual(t, d, 300*time.Millisecond)
	}
}

func TestRecoveryService_KnownEmailIsNotDelayed(t *testing.T) {
	env := newTestEnv()
	srv := env.recoveryService()
	env.store.seedAccount("alice@example.com", entity.RoleEmployee)

	srv.sleep = func(context.Context, time.Duration) {
		t.Fatal("known email must not sleep")
	}

	out, err := srv.RequestPasswordReset(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, out.DebugToken)
	assert.Len(t, env.mail.messages(), 1)
}

func TestRecoveryService_EmailVerification(t *testing.T) {
	env := newTestEnv()
	srv := newDebugRecovery(env)
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)
	ctx := context.Background()

	out, err := srv.RequestEmailVerification(ctx, alice.Email)
	require.NoError(t, err)

	// A reset token is not accepted as a verification token.
	reset, err := srv.RequestPasswordReset(ctx, alice.Email)
	require.NoError(t, err)
	require.ErrorIs(t, srv.ConfirmEmailVerification(ctx, reset.DebugToken), domainerrors.ErrEphemeralTokenInvalid)

	require.NoError(t, srv.ConfirmEmailVerification(ctx, out.DebugToken))

	account := env.store.account(alice.ID)
	assert.True(t, account.IsEmailVerified)
	require.NotNil(t, account.EmailVerifiedAt)
	assert.Equal(t, testStart, *account.EmailVerifiedAt)

	_, err = srv.RequestEmailVerification(ctx, alice.Email)
	require.ErrorIs(t, err, domainerrors.ErrEmailAlreadyVerified)
}

func TestRecoveryService_VerificationTokenLastsADay(t *testing.T) {
	env := newTestEnv()
	srv := newDebugRecovery(env)
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)
	ctx := context.Background()

	out, err := srv.RequestEmailVerification(ctx, alice.Email)
	require.NoError(t, err)

	env.clock.Advance(23 * time.Hour)
	require.NoError(t, srv.ConfirmEmailVerification(ctx, out.DebugToken))
}

func TestRecoveryService_MailCarriesRequestID(t *testing.T) {
	env := newTestEnv()
	srv := env.recoveryService()
	env.store.seedAccount("alice@example.com", entity.RoleEmployee)
	ctx := deliverycontext.WithRequestID(context.Background(), "req-42")

	_, err := srv.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)

	mails := env.mail.messages()
	require.Len(t, mails, 1)
	assert.Equal(t, "req-42", mails[0].RequestID)
}
