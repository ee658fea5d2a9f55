package repository

import (
	"context"

	"smarthr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrTokenAlreadyBlacklisted is returned when a jti is blacklisted a second time.
var ErrTokenAlreadyBlacklisted = errors.New("token already blacklisted")

// TokenRepository tracks issued refresh tokens and the permanent blacklist.
type TokenRepository interface {
	SaveIssued(ctx context.Context, token *entity.IssuedRefreshToken) error

	IsBlacklisted(ctx context.Context, tokenID uuid.UUID) (bool, error)

	// Blacklist inserts the entry. The jti is unique, so exactly one of two
	// concurrent calls succeeds; the other gets ErrTokenAlreadyBlacklisted.
	Blacklist(ctx context.Context, entry *entity.BlacklistedToken) error
}
