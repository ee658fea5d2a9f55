package postgres

import (
	"context"

	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/repository"
	"smarthr/internal/errors"
	"smarthr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reviewRepository implements repository.ReviewRepository using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.PerformanceReview) error {
	if review.ID == uuid.Nil {
		review.ID = uuid.Must(uuid.NewV7())
	}

	reviewM := fromReviewDomain(review)
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(reviewM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrEmployeeNotFound
		}

		return domainerrors.NewDatabaseExecuteError("create performance review", err)
	}

	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

func (repo *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PerformanceReview, error) {
	return repo.find(repo.db.WithContext(ctx), id)
}

// FindByIDForUpdate serializes status transitions and score recalculation
// on one review.
func (repo *reviewRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.PerformanceReview, error) {
	return repo.find(repo.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

func (repo *reviewRepository) find(query *gorm.DB, id uuid.UUID) (*entity.PerformanceReview, error) {
	var reviewM model.PerformanceReviewModel
	if err := query.Where("id = ?", id).First(&reviewM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, errors.Wrap(err, "failed to find performance review")
	}

	return toReviewDomain(&reviewM), nil
}

func (repo *reviewRepository) Update(ctx context.Context, review *entity.PerformanceReview) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PerformanceReviewModel{}).
		Where("id = ?", review.ID).
		Select("status", "manager_comment", "employee_comment", "overall_score", "submitted_at", "completed_at", "updated_at").
		Updates(fromReviewDomain(review))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError("update performance review", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

func (repo *reviewRepository) ListItems(ctx context.Context, reviewID uuid.UUID) ([]entity.ReviewItem, error) {
	var itemMs []model.ReviewItemModel
	err := repo.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&itemMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list review items")
	}

	items := make([]entity.ReviewItem, 0, len(itemMs))
	for i := range itemMs {
		items = append(items, toReviewItemDomain(&itemMs[i]))
	}

	return items, nil
}

func (repo *reviewRepository) FindItem(ctx context.Context, itemID uuid.UUID) (*entity.ReviewItem, error) {
	var itemM model.ReviewItemModel
	if err := repo.db.WithContext(ctx).Where("id = ?", itemID).First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find review item")
	}

	item := toReviewItemDomain(&itemM)

	return &item, nil
}

func (repo *reviewRepository) CreateItem(ctx context.Context, item *entity.ReviewItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.Must(uuid.NewV7())
	}

	itemM := fromReviewItemDomain(item)
	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrReviewNotFound
		}

		return domainerrors.NewDatabaseExecuteError("create review item", err)
	}

	item.CreatedAt = itemM.CreatedAt
	item.UpdatedAt = itemM.UpdatedAt

	return nil
}

func (repo *reviewRepository) UpdateItem(ctx context.Context, item *entity.ReviewItem) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ReviewItemModel{}).
		Where("id = ?", item.ID).
		Select("criteria", "score", "comment", "updated_at").
		Updates(fromReviewItemDomain(item))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError("update review item", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewItemNotFound
	}

	return nil
}

func (repo *reviewRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ReviewItemModel{}, "id = ?", itemID)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError("delete review item", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewItemNotFound
	}

	return nil
}

func toReviewDomain(data *model.PerformanceReviewModel) *entity.PerformanceReview {
	if data == nil {
		return nil
	}

	return &entity.PerformanceReview{
		ID:              data.ID,
		EmployeeID:      data.EmployeeID,
		ManagerID:       data.ManagerID,
		Status:          entity.ReviewStatus(data.Status),
		ManagerComment:  data.ManagerComment,
		EmployeeComment: data.EmployeeComment,
		OverallScore:    data.OverallScore,
		SubmittedAt:     data.SubmittedAt,
		CompletedAt:     data.CompletedAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromReviewDomain(data *entity.PerformanceReview) *model.PerformanceReviewModel {
	if data == nil {
		return nil
	}

	return &model.PerformanceReviewModel{
		ID:              data.ID,
		EmployeeID:      data.EmployeeID,
		ManagerID:       data.ManagerID,
		Status:          string(data.Status),
		ManagerComment:  data.ManagerComment,
		EmployeeComment: data.EmployeeComment,
		OverallScore:    data.OverallScore,
		SubmittedAt:     data.SubmittedAt,
		CompletedAt:     data.CompletedAt,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func toReviewItemDomain(data *model.ReviewItemModel) entity.ReviewItem {
	return entity.ReviewItem{
		ID:        data.ID,
		ReviewID:  data.ReviewID,
		Criteria:  data.Criteria,
		Score:     data.Score,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func fromReviewItemDomain(data *entity.ReviewItem) *model.ReviewItemModel {
	return &model.ReviewItemModel{
		ID:        data.ID,
		ReviewID:  data.ReviewID,
		Criteria:  data.Criteria,
		Score:     data.Score,
		Comment:   data.Comment,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
