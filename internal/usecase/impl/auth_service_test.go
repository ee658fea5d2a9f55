package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/policy"
	"smarthr/internal/domain/service"
	"smarthr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const correctPassword = "Correct-Horse-1"

func errorDetails(t *testing.T, err error) any {
	t.Helper()

	appErr, ok := domainerrors.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)

	return appErr.Details()
}

func login(srv *authService, email, password string) (*usecase.AuthOutput, error) {
	return srv.Login(context.Background(), &usecase.LoginInput{
		Email:    email,
		Password: password,
		Client:   entity.ClientInfo{IPAddress: "203.0.113.7", UserAgent: "test"},
	})
}

func TestAuthService_Login_Succeeds(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)

	out, err := login(srv, "  ALICE@Example.com ", correctPassword)
	require.NoError(t, err)
	require.NotNil(t, out.Tokens)
	assert.Equal(t, alice.ID, out.Account.ID)
	assert.NotEmpty(t, out.Tokens.AccessToken)
	assert.NotEmpty(t, out.Tokens.RefreshToken)

	records := env.store.activityFor(alice.ID)
	require.Len(t, records, 1)
	assert.True(t, records[0].Success)
	assert.Equal(t, entity.ActivityLogin, records[0].Action)
	assert.Equal(t, "203.0.113.7", records[0].IPAddress)
	assert.Equal(t, []string{service.LoginOutcomeSuccess}, env.metrics.logins)
}

func TestAuthService_Login_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()

	_, err := login(srv, "ghost@example.com", correctPassword)
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Nil(t, errorDetails(t, err))

	env.store.mu.Lock()
	assert.Empty(t, env.store.activity)
	env.store.mu.Unlock()
	assert.Equal(t, []string{service.LoginOutcomeUnknownAccount}, env.metrics.logins)
}

func TestAuthService_Login_LocksAfterMaxFailures(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)

	for want := 4; want >= 0; want-- {
		_, err := login(srv, alice.Email, "wrong-password")
		require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
		assert.Equal(t, map[string]int{"remaining_attempts": want}, errorDetails(t, err))
	}

	state := env.store.lockout(alice.ID)
	assert.True(t, state.IsLocked)
	assert.Equal(t, 5, state.FailedAttempts)
	assert.Equal(t, 1, env.metrics.locked)

	mails := env.mail.messages()
	require.Len(t, mails, 1)
	assert.Equal(t, alice.Email, mails[0].To)
	assert.Contains(t, mails[0].Body, "15 minutes")

	// The right password does not get through a lock.
	env.clock.Advance(time.Minute)
	_, err := login(srv, alice.Email, correctPassword)
	require.ErrorIs(t, err, domainerrors.ErrAccountLocked)
	assert.Equal(t, map[string]int{"minutes_remaining": 14}, errorDetails(t, err))

	records := env.store.activityFor(alice.ID)
	require.Len(t, records, 6)
	last := records[len(records)-1]
	assert.False(t, last.Success)
	assert.Equal(t, entity.ActivityReasonLocked, last.Extra[entity.ExtraReason])
	assert.Equal(t, 14*60, last.Extra[entity.ExtraSecondsLeft])

	// Further failures while locked do not extend the lock or send more mail.
	_, err = login(srv, alice.Email, "wrong-password")
	require.ErrorIs(t, err, domainerrors.ErrAccountLocked)
	assert.Len(t, env.mail.messages(), 1)
	assert.Equal(t, 5, env.store.lockout(alice.ID).FailedAttempts)
}

func TestAuthService_Login_HealsAfterWindow(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)

	for range 5 {
		_, _ = login(srv, alice.Email, "wrong-password")
	}
	require.True(t, env.store.lockout(alice.ID).IsLocked)

	env.clock.Advance(15*time.Minute + time.Second)

	_, err := login(srv, alice.Email, correctPassword)
	require.NoError(t, err)

	state := env.store.lockout(alice.ID)
	assert.False(t, state.IsLocked)
	assert.Zero(t, state.FailedAttempts)
	assert.Nil(t, state.LockedUntil)
}

func TestAuthService_Login_HealedAccountGetsFullAttempts(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)

	for range 5 {
		_, _ = login(srv, alice.Email, "wrong-password")
	}
	env.clock.Advance(16 * time.Minute)

	_, err := login(srv, alice.Email, "wrong-password")
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, map[string]int{"remaining_attempts": 4}, errorDetails(t, err))
}

func TestAuthService_Login_ConcurrentFailuresAreAllCounted(t *testing.T) {
	env := newTestEnv()
	env.cfg.Auth.MaxLoginAttempts = 100
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)

	const attempts = 20
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = login(srv, alice.Email, "wrong-password")
		}()
	}
	wg.Wait()

	assert.Equal(t, attempts, env.store.lockout(alice.ID).FailedAttempts)
	assert.Len(t, env.store.activityFor(alice.ID), attempts)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)
	env.store.mu.Lock()
	account := env.store.accounts[alice.ID]
	account.IsActive = false
	env.store.accounts[alice.ID] = account
	env.store.mu.Unlock()

	_, err := login(srv, alice.Email, correctPassword)
	require.ErrorIs(t, err, domainerrors.ErrAccountInactive)

	_, err = login(srv, alice.Email, "wrong-password")
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, 1, env.store.lockout(alice.ID).FailedAttempts)
}

func TestAuthService_Register(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()

	out, err := srv.Register(context.Background(), &usecase.RegisterInput{
		Email:     "New.Hire@Example.com",
		Password:  "Str0ng-Passw0rd",
		FirstName: "New",
		LastName:  "Hire",
	})
	require.NoError(t, err)

	assert.Equal(t, "new.hire@example.com", out.Account.Email)
	assert.Equal(t, entity.RoleEmployee, out.Account.Role)
	assert.Equal(t, entity.Groups{entity.GroupEmployee}, out.Account.Groups)
	assert.False(t, out.Account.IsEmailVerified)
	require.NotNil(t, out.Tokens)
	assert.NotEmpty(t, out.Tokens.RefreshToken)

	env.store.mu.Lock()
	_, hasLockout := env.store.lockouts[out.Account.ID]
	env.store.mu.Unlock()
	assert.True(t, hasLockout)

	mails := env.mail.messages()
	require.Len(t, mails, 1)
	assert.Contains(t, mails[0].Body, "https://hr.example.com/verify-email?token=secret-1")
}

func TestAuthService_Register_DuplicateEmailIgnoresCase(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	env.store.seedAccount("bob@example.com", entity.RoleEmployee)

	_, err := srv.Register(context.Background(), &usecase.RegisterInput{
		Email:    "BOB@Example.COM",
		Password: "Str0ng-Passw0rd",
	})
	require.ErrorIs(t, err, domainerrors.ErrEmailExists)
	assert.Empty(t, env.mail.messages())
}

func TestAuthService_Register_RoleAssignment(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	hr := env.principalFor(env.store.seedAccount("hr@example.com", entity.RoleHR))
	admin := env.principalFor(env.store.seedAccount("admin@example.com", entity.RoleAdmin))

	tests := []struct {
		name    string
		caller  *policy.Principal
		role    entity.Role
		wantErr error
	}{
		{name: "anonymous manager", caller: nil, role: entity.RoleManager, wantErr: domainerrors.ErrPermissionDenied},
		{name: "hr creates manager", caller: &hr, role: entity.RoleManager},
		{name: "hr creates admin", caller: &hr, role: entity.RoleAdmin, wantErr: domainerrors.ErrPermissionDenied},
		{name: "admin creates admin", caller: &admin, role: entity.RoleAdmin},
		{name: "unknown role", caller: &admin, role: entity.Role("CEO"), wantErr: domainerrors.ErrValidationFailed},
	}

	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := srv.Register(context.Background(), &usecase.RegisterInput{
				Email:    string(rune('a'+i)) + "-user@example.com",
				Password: "Str0ng-Passw0rd",
				Role:     tt.role,
				Caller:   tt.caller,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.role, out.Account.Role)
		})
	}
}

func TestAuthService_Register_WeakPassword(t *testing.T) {
	env := newTestEnv()

	_, err := env.authService().Register(context.Background(), &usecase.RegisterInput{
		Email:    "weak@example.com",
		Password: "short",
	})
	require.ErrorIs(t, err, domainerrors.ErrWeakPassword)
}

func TestAuthService_Refresh_RotatesAndRejectsOldToken(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)

	out, err := login(srv, alice.Email, correctPassword)
	require.NoError(t, err)
	oldRefresh := out.Tokens.RefreshToken

	refreshed, err := srv.Refresh(context.Background(), oldRefresh)
	require.NoError(t, err)
	assert.True(t, refreshed.Rotated)
	assert.NotEqual(t, oldRefresh, refreshed.Tokens.RefreshToken)

	_, err = srv.Refresh(context.Background(), oldRefresh)
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	assert.Equal(t, service.RefreshOutcomeRevoked, errorDetails(t, err))

	_, err = srv.Refresh(context.Background(), refreshed.Tokens.RefreshToken)
	require.NoError(t, err)
}

func TestAuthService_Refresh_WithoutRotation(t *testing.T) {
	env := newTestEnv()
	env.cfg.Auth.RotateRefreshTokens = false
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)

	out, err := login(srv, alice.Email, correctPassword)
	require.NoError(t, err)

	for range 2 {
		refreshed, err := srv.Refresh(context.Background(), out.Tokens.RefreshToken)
		require.NoError(t, err)
		assert.False(t, refreshed.Rotated)
		assert.Empty(t, refreshed.Tokens.RefreshToken)
		assert.NotEmpty(t, refreshed.Tokens.AccessToken)
	}
}

func TestAuthService_Refresh_RejectsAccessTokenAndExpiry(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)

	out, err := login(srv, alice.Email, correctPassword)
	require.NoError(t, err)

	_, err = srv.Refresh(context.Background(), out.Tokens.AccessToken)
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	env.clock.Advance(8 * 24 * time.Hour)
	_, err = srv.Refresh(context.Background(), out.Tokens.RefreshToken)
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
	assert.Equal(t, service.RefreshOutcomeExpired, errorDetails(t, err))
}

func TestAuthService_Logout(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)
	bob := env.store.seedAccount("bob@example.com", entity.RoleEmployee)

	out, err := login(srv, alice.Email, correctPassword)
	require.NoError(t, err)
	input := &usecase.LogoutInput{AccountID: alice.ID, RefreshToken: out.Tokens.RefreshToken}

	err = srv.Logout(context.Background(), &usecase.LogoutInput{AccountID: bob.ID, RefreshToken: out.Tokens.RefreshToken})
	require.ErrorIs(t, err, domainerrors.ErrLogoutTokenInvalid)

	require.NoError(t, srv.Logout(context.Background(), input))

	err = srv.Logout(context.Background(), input)
	require.ErrorIs(t, err, domainerrors.ErrLogoutTokenInvalid)

	_, err = srv.Refresh(context.Background(), out.Tokens.RefreshToken)
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	records := env.store.activityFor(alice.ID)
	require.Len(t, records, 2)
	assert.Equal(t, entity.ActivityLogout, records[1].Action)
}

func TestAuthService_ChangePassword(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)

	tests := []struct {
		name    string
		old     string
		new     string
		wantErr error
	}{
		{name: "wrong current password", old: "nope-nope", new: "Another-Pass-2", wantErr: domainerrors.ErrPasswordMismatch},
		{name: "unchanged", old: correctPassword, new: correctPassword, wantErr: domainerrors.ErrPasswordUnchanged},
		{name: "weak", old: correctPassword, new: "short", wantErr: domainerrors.ErrWeakPassword},
		{name: "ok", old: correctPassword, new: "Another-Pass-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := srv.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
				AccountID:   alice.ID,
				OldPassword: tt.old,
				NewPassword: tt.new,
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
		})
	}

	assert.Equal(t, hashed("Another-Pass-2"), env.store.account(alice.ID).PasswordHash)
}

func TestAuthService_Authenticate(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)
	profile := env.store.seedProfile(alice.ID, nil)

	out, err := login(srv, alice.Email, correctPassword)
	require.NoError(t, err)

	// Promote after the token was issued; the principal reflects the store.
	env.store.mu.Lock()
	account := env.store.accounts[alice.ID]
	account.ChangeRole(entity.RoleManager)
	env.store.accounts[alice.ID] = account
	env.store.mu.Unlock()

	principal, err := srv.Authenticate(context.Background(), out.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, principal.Role)
	require.NotNil(t, principal.ProfileID)
	assert.Equal(t, profile.ID, *principal.ProfileID)

	_, err = srv.Authenticate(context.Background(), out.Tokens.RefreshToken)
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)

	_, err = srv.Authenticate(context.Background(), "garbage")
	require.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestAuthService_Me(t *testing.T) {
	env := newTestEnv()
	srv := env.authService()
	alice := env.store.seedAccount("alice@example.com", entity.RoleEmployee)

	account, err := srv.Me(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Email, account.Email)

	_, err = srv.Me(context.Background(), uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
