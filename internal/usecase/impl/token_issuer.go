package impl

import (
	"context"

	"smarthr/config"
	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/repository"
	"smarthr/internal/domain/service"
	"smarthr/internal/errors"
)

// errTokenRevoked marks a refresh token found on the blacklist.
var errTokenRevoked = errors.New("token revoked")

// tokenIssuer mints token pairs and manages the refresh-token blacklist.
type tokenIssuer struct {
	tokens service.TokenService
	clock  service.Clock
	rotate bool
}

func newTokenIssuer(cfg *config.AuthConfig, tokens service.TokenService, clock service.Clock) *tokenIssuer {
	return &tokenIssuer{
		tokens: tokens,
		clock:  clock,
		rotate: cfg.RotateRefreshTokens,
	}
}

// issue signs an access and a refresh token and records the refresh jti.
func (i *tokenIssuer) issue(ctx context.Context, repo repository.TokenRepository, account *entity.Account) (*entity.TokenPair, error) {
	pair, err := i.issueAccess(account)
	if err != nil {
		return nil, err
	}

	refresh, claims, err := i.tokens.Generate(account, entity.TokenTypeRefresh)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	err = repo.SaveIssued(ctx, &entity.IssuedRefreshToken{
		TokenID:   claims.TokenID,
		AccountID: account.ID,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to record issued refresh token")
	}

	pair.RefreshToken = refresh
	pair.RefreshExpiresAt = claims.ExpiresAt

	return pair, nil
}

func (i *tokenIssuer) issueAccess(account *entity.Account) (*entity.TokenPair, error) {
	access, claims, err := i.tokens.Generate(account, entity.TokenTypeAccess)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	return &entity.TokenPair{AccessToken: access, AccessExpiresAt: claims.ExpiresAt}, nil
}

// verifyRefresh checks signature, expiry, type and the blacklist. The error
// keeps the precise cause for logs and metrics.
func (i *tokenIssuer) verifyRefresh(ctx context.Context, repo repository.TokenRepository, token string) (*entity.TokenClaims, error) {
	claims, err := i.tokens.Parse(token, entity.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	revoked, err := repo.IsBlacklisted(ctx, claims.TokenID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check token blacklist")
	}
	if revoked {
		return nil, errTokenRevoked
	}

	return claims, nil
}

// revoke blacklists the refresh token. A jti that is already on the list,
// even one inserted concurrently, yields errTokenRevoked.
func (i *tokenIssuer) revoke(ctx context.Context, repo repository.TokenRepository, claims *entity.TokenClaims, reason entity.BlacklistReason) error {
	err := repo.Blacklist(ctx, &entity.BlacklistedToken{
		TokenID:       claims.TokenID,
		AccountID:     claims.AccountID,
		Reason:        reason,
		BlacklistedAt: i.clock.Now(),
		ExpiresAt:     claims.ExpiresAt,
	})
	if errors.Is(err, repository.ErrTokenAlreadyBlacklisted) {
		return errTokenRevoked
	}

	return errors.Wrap(err, "failed to blacklist refresh token")
}

// refreshOutcome classifies a verification failure for metrics.
func refreshOutcome(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenExpired):
		return service.RefreshOutcomeExpired
	case errors.Is(err, errTokenRevoked):
		return service.RefreshOutcomeRevoked
	default:
		return service.RefreshOutcomeInvalid
	}
}

// isTokenRejection separates client token problems from infrastructure failures.
func isTokenRejection(err error) bool {
	return errors.IsAny(err,
		service.ErrTokenMalformed,
		service.ErrTokenExpired,
		service.ErrTokenWrongType,
		errTokenRevoked,
		repository.ErrAccountNotFound,
	)
}

// collapseTokenError hides the cause from the client but keeps it as private detail.
func collapseTokenError(err error, public *domainerrors.BaseError) error {
	if !isTokenRejection(err) {
		return err
	}

	return public.WithDetails(refreshOutcome(err))
}
