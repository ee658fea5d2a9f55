package impl

import (
	"context"
	"time"

	"smarthr/config"
	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/repository"
	"smarthr/internal/domain/service"
	"smarthr/internal/errors"

	"github.com/google/uuid"
)

// Redemption failures. The client sees one generic error for all three.
var (
	errEphemeralNotFound = errors.New("ephemeral token not found")
	errEphemeralUsed     = errors.New("ephemeral token already used")
	errEphemeralExpired  = errors.New("ephemeral token expired")
)

// ephemeralStore issues and redeems single-use emailed tokens.
type ephemeralStore struct {
	secrets service.SecretGenerator
	clock   service.Clock
	metrics service.AuthMetrics
	ttl     map[entity.EphemeralKind]time.Duration
	debug   bool
}

func newEphemeralStore(cfg *config.AuthConfig, secrets service.SecretGenerator, clock service.Clock, metrics service.AuthMetrics) *ephemeralStore {
	return &ephemeralStore{
		secrets: secrets,
		clock:   clock,
		metrics: metrics,
		ttl: map[entity.EphemeralKind]time.Duration{
			entity.EphemeralPasswordReset:     cfg.PasswordResetTTL,
			entity.EphemeralEmailVerification: cfg.EmailVerificationTTL,
		},
		debug: cfg.ExposeDebugTokens,
	}
}

// request returns the account's active token of kind, replacing a stale one.
// At most one unused token per kind exists after it returns.
func (s *ephemeralStore) request(ctx context.Context, repo repository.EphemeralTokenRepository, accountID uuid.UUID, kind entity.EphemeralKind) (*entity.EphemeralToken, error) {
	now := s.clock.Now()

	existing, err := repo.FindLatestUnused(ctx, accountID, kind)
	switch {
	case err == nil && !existing.IsExpired(now, s.ttl[kind]):
		s.metrics.EphemeralToken(kind, service.EphemeralEventReused)

		return existing, nil
	case err == nil:
		if err := repo.Delete(ctx, existing.ID); err != nil {
			return nil, errors.Wrap(err, "failed to delete stale ephemeral token")
		}
	case !errors.Is(err, repository.ErrEphemeralTokenNotFound):
		return nil, errors.Wrap(err, "failed to look up ephemeral token")
	}

	value, err := s.secrets.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate ephemeral token")
	}

	token := &entity.EphemeralToken{
		Kind:      kind,
		Token:     value,
		AccountID: accountID,
		CreatedAt: now,
	}
	if err := repo.Create(ctx, token); err != nil {
		return nil, errors.Wrap(err, "failed to store ephemeral token")
	}
	s.metrics.EphemeralToken(kind, service.EphemeralEventIssued)

	return token, nil
}

// redeem validates the token and marks it used. The row stays locked until
// the surrounding transaction ends, so a second redemption sees it used.
func (s *ephemeralStore) redeem(ctx context.Context, repo repository.EphemeralTokenRepository, value string, kind entity.EphemeralKind) (*entity.EphemeralToken, error) {
	now := s.clock.Now()

	token, err := repo.FindByValueForUpdate(ctx, value, kind)
	switch {
	case errors.Is(err, repository.ErrEphemeralTokenNotFound):
		return nil, s.reject(kind, errEphemeralNotFound)
	case err != nil:
		return nil, errors.Wrap(err, "failed to look up ephemeral token")
	case token.IsUsed:
		return nil, s.reject(kind, errEphemeralUsed)
	case token.IsExpired(now, s.ttl[kind]):
		return nil, s.reject(kind, errEphemeralExpired)
	}

	token.MarkUsed(now)
	if err := repo.MarkUsed(ctx, token.ID, now); err != nil {
		if errors.Is(err, repository.ErrEphemeralTokenNotFound) {
			return nil, s.reject(kind, errEphemeralUsed)
		}

		return nil, errors.Wrap(err, "failed to mark ephemeral token used")
	}
	s.metrics.EphemeralToken(kind, service.EphemeralEventRedeemed)

	return token, nil
}

func (s *ephemeralStore) reject(kind entity.EphemeralKind, cause error) error {
	s.metrics.EphemeralToken(kind, service.EphemeralEventRejected)

	public := domainerrors.ErrEphemeralTokenInvalid.WithDetails(cause.Error())
	if s.debug {
		public = domainerrors.ErrEphemeralTokenInvalid.WithPublicDetails(map[string]string{"reason": cause.Error()})
	}

	return errors.Join(public, cause)
}
