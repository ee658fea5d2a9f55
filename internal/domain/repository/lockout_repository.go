package repository

import (
	"context"

	"smarthr/internal/domain/entity"

	"github.com/google/uuid"
)

// LockoutRepository stores one LockoutState per account.
type LockoutRepository interface {
	// Create inserts the initial state; an existing row is left untouched.
	Create(ctx context.Context, state *entity.LockoutState) error

	// GetOrCreateForUpdate returns the state row locked for the rest of the
	// surrounding transaction, creating it first when absent. Concurrent
	// callers for the same account are serialized.
	GetOrCreateForUpdate(ctx context.Context, accountID uuid.UUID) (*entity.LockoutState, error)

	Save(ctx context.Context, state *entity.LockoutState) error
}
