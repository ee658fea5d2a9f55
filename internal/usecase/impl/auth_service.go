// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"smarthr/config"
	deliverycontext "smarthr/internal/delivery/context"
	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/policy"
	"smarthr/internal/domain/repository"
	"smarthr/internal/domain/service"
	"smarthr/internal/errors"
	"smarthr/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	tokens    service.TokenService
	clock     service.Clock
	metrics   service.AuthMetrics
	lockout   *lockoutTracker
	issuer    *tokenIssuer
	ephemeral *ephemeralStore
	activity  activityRecorder
	notifier  *notifier
	logger    *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	Hasher     service.PasswordHasher
	Tokens     service.TokenService
	Secrets    service.SecretGenerator
	Dispatcher service.MailDispatcher
	Clock      service.Clock
	Metrics    service.AuthMetrics `optional:"true"`
	Config     *config.Config
	Logger     *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	metrics := params.Metrics
	if metrics == nil {
		metrics = service.NopMetrics{}
	}
	authCfg := params.Config.Auth

	return &authService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		tokens:    params.Tokens,
		clock:     params.Clock,
		metrics:   metrics,
		lockout:   newLockoutTracker(authCfg, params.Clock),
		issuer:    newTokenIssuer(authCfg, params.Tokens, params.Clock),
		ephemeral: newEphemeralStore(authCfg, params.Secrets, params.Clock, metrics),
		activity:  activityRecorder{clock: params.Clock},
		notifier:  newNotifier(params.Dispatcher, authCfg.FrontendBaseURL),
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// loginAttempt collects what the login transaction decided. A rejected
// attempt still commits its lockout and activity writes, so the rejection is
// carried out of the transaction instead of being returned from it.
type loginAttempt struct {
	account    *entity.Account
	tokens     *entity.TokenPair
	rejection  error
	outcome    string
	justLocked bool
	minutes    int
}

// Login checks the lockout before the password, so a locked account never
// reaches the hash comparison. Unknown emails get the same error as a wrong
// password and leave no activity row.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	var attempt loginAttempt
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		attempt = loginAttempt{}

		return srv.attemptLogin(ctx, f, email, input, &attempt)
	})
	if err != nil {
		srv.log(ctx).Error("Login transaction failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute login transaction")
	}

	srv.metrics.LoginAttempt(attempt.outcome)

	if attempt.justLocked {
		srv.metrics.AccountLocked()
		srv.log(ctx).Warn("Account locked after repeated failures", slog.Any("accountID", attempt.account.ID))
		srv.notifier.accountLocked(ctx, attempt.account, attempt.minutes)
	}

	if attempt.rejection != nil {
		return nil, attempt.rejection
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("accountID", attempt.account.ID))

	return &usecase.AuthOutput{Account: attempt.account, Tokens: attempt.tokens}, nil
}

func (srv *authService) attemptLogin(ctx context.Context, f repository.RepositoryFactory, email string, input *usecase.LoginInput, attempt *loginAttempt) error {
	account, err := f.AccountRepo().FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrAccountNotFound) {
		attempt.outcome = service.LoginOutcomeUnknownAccount
		attempt.rejection = domainerrors.ErrInvalidCredentials

		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to find account by email")
	}
	attempt.account = account

	state, err := srv.lockout.acquire(ctx, f.LockoutRepo(), account.ID)
	if err != nil {
		return err
	}

	now := srv.clock.Now()
	activityRepo := f.ActivityRepo()

	if state.IsLocked {
		minutes := state.MinutesRemaining(now)
		srv.log(ctx).Warn("Login refused for locked account", slog.Any("accountID", account.ID), slog.Int("minutesLeft", minutes))

		attempt.outcome = service.LoginOutcomeLocked
		attempt.rejection = domainerrors.ErrAccountLocked.WithPublicDetails(map[string]int{"minutes_remaining": minutes})

		return srv.activity.record(ctx, activityRepo, account.ID, entity.ActivityLogin, false, input.Client, map[string]any{
			entity.ExtraReason:      entity.ActivityReasonLocked,
			entity.ExtraSecondsLeft: state.SecondsRemaining(now),
			entity.ExtraMinutesLeft: minutes,
		})
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		justLocked, err := srv.lockout.recordFailure(ctx, f.LockoutRepo(), state)
		if err != nil {
			return err
		}
		remaining := srv.lockout.remainingAttempts(state)

		attempt.outcome = service.LoginOutcomeInvalidPassword
		attempt.justLocked = justLocked
		attempt.minutes = state.MinutesRemaining(now)
		attempt.rejection = domainerrors.ErrInvalidCredentials.WithPublicDetails(map[string]int{"remaining_attempts": remaining})

		return srv.activity.record(ctx, activityRepo, account.ID, entity.ActivityLogin, false, input.Client, map[string]any{
			entity.ExtraReason:            entity.ActivityReasonInvalidPassword,
			entity.ExtraFailedAttempts:    state.FailedAttempts,
			entity.ExtraRemainingAttempts: remaining,
		})
	}

	if !account.IsActive {
		attempt.outcome = service.LoginOutcomeInactive
		attempt.rejection = domainerrors.ErrAccountInactive

		return srv.activity.record(ctx, activityRepo, account.ID, entity.ActivityLogin, false, input.Client, map[string]any{
			entity.ExtraReason: entity.ActivityReasonInactive,
		})
	}

	if err := srv.lockout.recordSuccess(ctx, f.LockoutRepo(), state); err != nil {
		return err
	}
	if err := srv.activity.record(ctx, activityRepo, account.ID, entity.ActivityLogin, true, input.Client, nil); err != nil {
		return err
	}

	tokens, err := srv.issuer.issue(ctx, f.TokenRepo(), account)
	if err != nil {
		return err
	}
	attempt.outcome = service.LoginOutcomeSuccess
	attempt.tokens = tokens

	return nil
}

// Register creates the account with its lockout state, base group and a
// verification token in one transaction, then mails the verification link.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	role := input.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{"role": "unknown role"})
	}
	if err := canAssignRole(input.Caller, role); err != nil {
		return nil, err
	}

	if err := srv.hasher.ValidateStrength(input.Password); err != nil {
		return nil, err
	}
	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed
	}

	now := srv.clock.Now()
	account := &entity.Account{
		Email:        entity.NormalizeEmail(input.Email),
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
		Groups:       entity.Groups{}.SyncWithRole(role),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var (
		tokens       *entity.TokenPair
		verification *entity.EphemeralToken
	)
	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.AccountRepo().Create(ctx, account); err != nil {
			if errors.Is(err, repository.ErrAccountEmailExists) {
				return domainerrors.ErrEmailExists
			}

			return errors.Wrap(err, "failed to create account")
		}

		if err := f.LockoutRepo().Create(ctx, entity.NewLockoutState(account.ID, now)); err != nil {
			return errors.Wrap(err, "failed to create lockout state")
		}

		var err error
		verification, err = srv.ephemeral.request(ctx, f.EphemeralTokenRepo(), account.ID, entity.EphemeralEmailVerification)
		if err != nil {
			return err
		}

		tokens, err = srv.issuer.issue(ctx, f.TokenRepo(), account)

		return err
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrEmailExists) {
			srv.log(ctx).Info("Registration rejected, email taken", slog.String("email", account.Email))

			return nil, domainerrors.ErrEmailExists
		}
		srv.log(ctx).Error("Registration transaction failed", slog.String("email", account.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.notifier.verifyEmail(ctx, account, verification.Token)
	srv.log(ctx).Info("Account registered", slog.Any("accountID", account.ID), slog.String("role", role.String()))

	return &usecase.AuthOutput{Account: account, Tokens: tokens}, nil
}

// canAssignRole: anyone may self-register as EMPLOYEE, HR/ADMIN may create
// MANAGER and HR accounts, and only ADMIN may create another ADMIN.
func canAssignRole(caller *policy.Principal, role entity.Role) error {
	if role == entity.RoleEmployee {
		return nil
	}
	if caller == nil || !policy.HasHRAccess(*caller) {
		return domainerrors.ErrPermissionDenied.WithDetails(policy.ReasonRoleRequired)
	}
	if role == entity.RoleAdmin && !policy.IsAdmin(*caller) {
		return domainerrors.ErrPermissionDenied.WithDetails(policy.ReasonRoleRequired)
	}

	return nil
}

// Refresh verifies the refresh token and, with rotation on, blacklists it and
// issues a replacement in the same transaction. Of two concurrent refreshes
// with one token only one commits.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	var out usecase.RefreshOutput
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		tokenRepo := f.TokenRepo()

		claims, err := srv.issuer.verifyRefresh(ctx, tokenRepo, refreshToken)
		if err != nil {
			return err
		}

		account, err := f.AccountRepo().FindByID(ctx, claims.AccountID)
		if err != nil {
			return err
		}
		if !account.IsActive {
			return domainerrors.ErrAccountInactive
		}

		if !srv.issuer.rotate {
			out.Tokens, err = srv.issuer.issueAccess(account)

			return err
		}

		if err := srv.issuer.revoke(ctx, tokenRepo, claims, entity.BlacklistReasonRotation); err != nil {
			return err
		}
		out.Tokens, err = srv.issuer.issue(ctx, tokenRepo, account)
		out.Rotated = err == nil

		return err
	})
	if err != nil {
		if isTokenRejection(err) {
			outcome := refreshOutcome(err)
			srv.metrics.TokenRefresh(outcome)
			srv.log(ctx).Warn("Refresh token rejected", slog.String("outcome", outcome))

			return nil, collapseTokenError(err, domainerrors.ErrTokenInvalid)
		}
		if errors.Is(err, domainerrors.ErrAccountInactive) {
			return nil, err
		}

		return nil, errors.Wrap(err, "failed to execute refresh transaction")
	}

	if out.Rotated {
		srv.metrics.TokenRefresh(service.RefreshOutcomeRotated)
	} else {
		srv.metrics.TokenRefresh(service.RefreshOutcomeReissued)
	}

	return &out, nil
}

// Logout blacklists the caller's refresh token. Revoking a token twice fails.
func (srv *authService) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		claims, err := srv.tokens.Parse(input.RefreshToken, entity.TokenTypeRefresh)
		if err != nil {
			return err
		}
		if claims.AccountID != input.AccountID {
			return errors.Wrap(service.ErrTokenMalformed, "refresh token belongs to another account")
		}

		if err := srv.issuer.revoke(ctx, f.TokenRepo(), claims, entity.BlacklistReasonLogout); err != nil {
			return err
		}

		return srv.activity.record(ctx, f.ActivityRepo(), input.AccountID, entity.ActivityLogout, true, input.Client, nil)
	})
	if err != nil {
		if isTokenRejection(err) {
			srv.log(ctx).Warn("Logout with unusable refresh token", slog.Any("accountID", input.AccountID), slog.Any("error", err))

			return collapseTokenError(err, domainerrors.ErrLogoutTokenInvalid)
		}

		return errors.Wrap(err, "failed to execute logout transaction")
	}

	srv.metrics.TokenRefresh(service.RefreshOutcomeLoggedOut)

	return nil
}

// ChangePassword requires the current password and a different new one.
func (srv *authService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	return srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		accountRepo := f.AccountRepo()

		account, err := accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			return notFound(err, "account")
		}

		if !srv.hasher.Check(input.OldPassword, account.PasswordHash) {
			srv.log(ctx).Warn("Password change with wrong current password", slog.Any("accountID", account.ID))

			return domainerrors.ErrPasswordMismatch
		}
		if input.OldPassword == input.NewPassword {
			return domainerrors.ErrPasswordUnchanged
		}
		if err := srv.hasher.ValidateStrength(input.NewPassword); err != nil {
			return err
		}

		hash, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return domainerrors.ErrPasswordHashFailed
		}

		return accountRepo.UpdatePassword(ctx, account.ID, hash)
	})
}

func (srv *authService) Me(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	var account *entity.Account
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		var err error
		account, err = f.AccountRepo().FindByID(ctx, accountID)

		return notFound(err, "account")
	})

	return account, err
}

// Authenticate verifies the access token and loads the current role, groups
// and employee profile. The role inside the token is not trusted.
func (srv *authService) Authenticate(ctx context.Context, accessToken string) (*policy.Principal, error) {
	claims, err := srv.tokens.Parse(accessToken, entity.TokenTypeAccess)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.WithDetails(refreshOutcome(err))
	}

	var principal policy.Principal
	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		account, err := f.AccountRepo().FindByID(ctx, claims.AccountID)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrTokenInvalid
		}
		if err != nil {
			return err
		}
		if !account.IsActive {
			return domainerrors.ErrAccountInactive
		}

		profile, err := f.EmployeeRepo().FindByAccountID(ctx, account.ID)
		if err != nil && !errors.Is(err, repository.ErrEmployeeNotFound) {
			return err
		}
		principal = policy.NewPrincipal(account, profile)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &principal, nil
}
