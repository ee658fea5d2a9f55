package repository

import (
	"context"
	"time"

	"smarthr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var ErrEphemeralTokenNotFound = errors.New("ephemeral token not found")

// EphemeralTokenRepository stores password-reset and email-verification tokens.
type EphemeralTokenRepository interface {
	Create(ctx context.Context, token *entity.EphemeralToken) error

	// FindLatestUnused returns the newest unused token of kind for the account.
	FindLatestUnused(ctx context.Context, accountID uuid.UUID, kind entity.EphemeralKind) (*entity.EphemeralToken, error)

	// FindByValueForUpdate looks up an exact value and locks the row.
	FindByValueForUpdate(ctx context.Context, value string, kind entity.EphemeralKind) (*entity.EphemeralToken, error)

	Delete(ctx context.Context, id uuid.UUID) error

	MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error
}
