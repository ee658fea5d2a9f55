package postgres

import (
	"context"

	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/repository"
	"smarthr/internal/errors"
	"smarthr/internal/infra/ids"
	"smarthr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// activityRepository implements repository.ActivityRepository using GORM.
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository is the constructor for activityRepository.
func NewActivityRepository(db *gorm.DB) repository.ActivityRepository {
	return &activityRepository{db: db}
}

// Append assigns a ULID when the record has no ID yet.
func (repo *activityRepository) Append(ctx context.Context, record *entity.ActivityRecord) error {
	if record.ID == "" {
		record.ID = ids.NewAt(record.OccurredAt)
	}

	err := repo.db.WithContext(ctx).Create(&model.ActivityRecordModel{
		ID:         record.ID,
		AccountID:  record.AccountID,
		Action:     string(record.Action),
		Success:    record.Success,
		OccurredAt: record.OccurredAt,
		IPAddress:  record.IPAddress,
		UserAgent:  record.UserAgent,
		Extra:      record.Extra,
	}).Error

	return domainerrors.NewDatabaseExecuteError("append activity record", err)
}

// ListByAccount orders by occurred_at then ULID, both descending.
func (repo *activityRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit int) ([]*entity.ActivityRecord, error) {
	query := repo.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("occurred_at DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recordMs []model.ActivityRecordModel
	if err := query.Find(&recordMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list activity records")
	}

	records := make([]*entity.ActivityRecord, 0, len(recordMs))
	for i := range recordMs {
		m := &recordMs[i]
		records = append(records, &entity.ActivityRecord{
			ID:         m.ID,
			AccountID:  m.AccountID,
			Action:     entity.ActivityAction(m.Action),
			Success:    m.Success,
			OccurredAt: m.OccurredAt,
			IPAddress:  m.IPAddress,
			UserAgent:  m.UserAgent,
			Extra:      m.Extra,
		})
	}

	return records, nil
}
