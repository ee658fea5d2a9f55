package usecase

import (
	"context"

	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/policy"

	"github.com/google/uuid"
)

// UpdateReviewInput holds optional comment changes; nil leaves a field as is.
type UpdateReviewInput struct {
	ManagerComment  *string
	EmployeeComment *string
}

// ReviewItemInput creates or updates a scored criterion. On update, zero
// values leave the field unchanged.
type ReviewItemInput struct {
	Criteria string
	Score    *int
	Comment  *string
}

// ReviewUsecase drives performance reviews through DRAFT, SUBMITTED and
// COMPLETED. Missing reviews yield 404 before any permission check, then
// role and ownership (403), then status (400).
type ReviewUsecase interface {
	Create(ctx context.Context, caller policy.Principal, employeeID uuid.UUID) (*entity.PerformanceReview, error)
	Get(ctx context.Context, caller policy.Principal, reviewID uuid.UUID) (*entity.PerformanceReview, error)
	Update(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, input *UpdateReviewInput) (*entity.PerformanceReview, error)
	Submit(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, managerComment *string) (*entity.PerformanceReview, error)
	Acknowledge(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, employeeComment *string) (*entity.PerformanceReview, error)

	ListItems(ctx context.Context, caller policy.Principal, reviewID uuid.UUID) ([]entity.ReviewItem, error)
	AddItem(ctx context.Context, caller policy.Principal, reviewID uuid.UUID, input *ReviewItemInput) (*entity.ReviewItem, error)
	UpdateItem(ctx context.Context, caller policy.Principal, itemID uuid.UUID, input *ReviewItemInput) (*entity.ReviewItem, error)
	DeleteItem(ctx context.Context, caller policy.Principal, itemID uuid.UUID) error
}
