package impl

import (
	"context"
	"crypto/rand"
	"log/slog"
	"math/big"
	"time"

	"smarthr/config"
	deliverycontext "smarthr/internal/delivery/context"
	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/repository"
	"smarthr/internal/domain/service"
	"smarthr/internal/errors"
	"smarthr/internal/usecase"

	"go.uber.org/fx"
)

// recoveryService implements the RecoveryUsecase interface.
type recoveryService struct {
	txManager   repository.TransactionManager
	hasher      service.PasswordHasher
	clock       service.Clock
	ephemeral   *ephemeralStore
	notifier    *notifier
	exposeDebug bool
	delayMin    time.Duration
	delayMax    time.Duration
	sleep       func(ctx context.Context, d time.Duration)
	logger      *slog.Logger
}

// RecoveryServiceParams holds dependencies for RecoveryService, injected by Fx.
type RecoveryServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	Hasher     service.PasswordHasher
	Secrets    service.SecretGenerator
	Dispatcher service.MailDispatcher
	Clock      service.Clock
	Metrics    service.AuthMetrics `optional:"true"`
	Config     *config.Config
	Logger     *slog.Logger
}

func NewRecoveryService(params RecoveryServiceParams) usecase.RecoveryUsecase {
	metrics := params.Metrics
	if metrics == nil {
		metrics = service.NopMetrics{}
	}
	authCfg := params.Config.Auth

	return &recoveryService{
		txManager:   params.TxManager,
		hasher:      params.Hasher,
		clock:       params.Clock,
		ephemeral:   newEphemeralStore(authCfg, params.Secrets, params.Clock, metrics),
		notifier:    newNotifier(params.Dispatcher, authCfg.FrontendBaseURL),
		exposeDebug: authCfg.ExposeDebugTokens,
		delayMin:    authCfg.EnumerationDelay.Min,
		delayMax:    authCfg.EnumerationDelay.Max,
		sleep:       sleepContext,
		logger:      params.Logger,
	}
}

func (srv *recoveryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RequestPasswordReset mails a reset link when the account exists. The
// response is identical either way.
func (srv *recoveryService) RequestPasswordReset(ctx context.Context, email string) (*usecase.EphemeralRequestOutput, error) {
	account, token, err := srv.requestToken(ctx, email, entity.EphemeralPasswordReset, nil)
	if err != nil {
		return nil, err
	}
	if account == nil {
		srv.log(ctx).Debug("Password reset requested for unknown email")
		srv.enumerationDelay(ctx)

		return &usecase.EphemeralRequestOutput{}, nil
	}

	srv.notifier.passwordReset(ctx, account, token.Token)

	return srv.output(token), nil
}

// RequestEmailVerification mails a verification link. Unknown emails get the
// generic success; an already verified address is rejected.
func (srv *recoveryService) RequestEmailVerification(ctx context.Context, email string) (*usecase.EphemeralRequestOutput, error) {
	account, token, err := srv.requestToken(ctx, email, entity.EphemeralEmailVerification, func(a *entity.Account) error {
		if a.IsEmailVerified {
			return domainerrors.ErrEmailAlreadyVerified
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	if account == nil {
		srv.log(ctx).Debug("Email verification requested for unknown email")
		srv.enumerationDelay(ctx)

		return &usecase.EphemeralRequestOutput{}, nil
	}

	srv.notifier.verifyEmail(ctx, account, token.Token)

	return srv.output(token), nil
}

// requestToken returns a nil account when the email is unknown.
func (srv *recoveryService) requestToken(
	ctx context.Context,
	email string,
	kind entity.EphemeralKind,
	precheck func(*entity.Account) error,
) (*entity.Account, *entity.EphemeralToken, error) {
	var (
		account *entity.Account
		token   *entity.EphemeralToken
	)
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		found, err := f.AccountRepo().FindByEmail(ctx, entity.NormalizeEmail(email))
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to find account by email")
		}
		if precheck != nil {
			if err := precheck(found); err != nil {
				return err
			}
		}

		token, err = srv.ephemeral.request(ctx, f.EphemeralTokenRepo(), found.ID, kind)
		if err != nil {
			return err
		}
		account = found

		return nil
	})
	if err != nil {
		if _, ok := domainerrors.AsAppError(err); ok {
			return nil, nil, err
		}
		srv.log(ctx).Error("Ephemeral token request failed", slog.String("kind", kind.String()), slog.Any("error", err))

		return nil, nil, errors.Wrap(err, "failed to request ephemeral token")
	}

	return account, token, nil
}

func (srv *recoveryService) output(token *entity.EphemeralToken) *usecase.EphemeralRequestOutput {
	if !srv.exposeDebug {
		return &usecase.EphemeralRequestOutput{}
	}

	return &usecase.EphemeralRequestOutput{DebugToken: token.Token}
}

// ConfirmPasswordReset sets the new password and consumes the token together.
func (srv *recoveryService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	if err := srv.hasher.ValidateStrength(newPassword); err != nil {
		return err
	}
	hash, err := srv.hasher.Hash(newPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed
	}

	err = srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		redeemed, err := srv.ephemeral.redeem(ctx, f.EphemeralTokenRepo(), token, entity.EphemeralPasswordReset)
		if err != nil {
			return err
		}

		return f.AccountRepo().UpdatePassword(ctx, redeemed.AccountID, hash)
	})
	if err != nil {
		srv.log(ctx).Warn("Password reset rejected", slog.Any("error", err))

		return err
	}

	return nil
}

// ConfirmEmailVerification marks the address verified and consumes the token.
func (srv *recoveryService) ConfirmEmailVerification(ctx context.Context, token string) error {
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		redeemed, err := srv.ephemeral.redeem(ctx, f.EphemeralTokenRepo(), token, entity.EphemeralEmailVerification)
		if err != nil {
			return err
		}

		return f.AccountRepo().MarkEmailVerified(ctx, redeemed.AccountID, srv.clock.Now())
	})
	if err != nil {
		srv.log(ctx).Warn("Email verification rejected", slog.Any("error", err))

		return err
	}

	return nil
}

// enumerationDelay sleeps a uniformly random duration in [delayMin, delayMax]
// so the unknown-email branch does not return measurably faster.
func (srv *recoveryService) enumerationDelay(ctx context.Context) {
	if srv.delayMax <= 0 {
		return
	}

	delay := srv.delayMin
	if span := int64(srv.delayMax - srv.delayMin); span > 0 {
		n, err := rand.Int(rand.Reader, big.NewInt(span+1))
		if err == nil {
			delay += time.Duration(n.Int64())
		}
	}

	srv.sleep(ctx, delay)
}

func sleepContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
