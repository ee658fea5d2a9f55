package repository

import (
	"context"

	"smarthr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrReviewNotFound     = errors.New("performance review not found")
	ErrReviewItemNotFound = errors.New("review item not found")
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.PerformanceReview) error

	// FindByID loads the review without items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PerformanceReview, error)

	// FindByIDForUpdate loads and locks the review row.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.PerformanceReview, error)

	// Update writes status, comments, score and transition timestamps.
	Update(ctx context.Context, review *entity.PerformanceReview) error

	ListItems(ctx context.Context, reviewID uuid.UUID) ([]entity.ReviewItem, error)

	FindItem(ctx context.Context, itemID uuid.UUID) (*entity.ReviewItem, error)

	CreateItem(ctx context.Context, item *entity.ReviewItem) error

	UpdateItem(ctx context.Context, item *entity.ReviewItem) error

	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}
