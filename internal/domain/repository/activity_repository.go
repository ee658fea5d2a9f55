package repository

import (
	"context"

	"smarthr/internal/domain/entity"

	"github.com/google/uuid"
)

// ActivityRepository is append-only: there is no update or delete.
type ActivityRepository interface {
	Append(ctx context.Context, record *entity.ActivityRecord) error

	// ListByAccount returns the newest records first.
	ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]*entity.ActivityRecord, error)
}
