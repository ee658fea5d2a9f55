package postgres

import (
	"context"
	"time"

	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/repository"
	"smarthr/internal/errors"
	"smarthr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockoutRepository implements repository.LockoutRepository using GORM.
type lockoutRepository struct {
	db *gorm.DB
}

// NewLockoutRepository is the constructor for lockoutRepository.
func NewLockoutRepository(db *gorm.DB) repository.LockoutRepository {
	return &lockoutRepository{db: db}
}

func (repo *lockoutRepository) Create(ctx context.Context, state *entity.LockoutState) error {
	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(fromLockoutDomain(state)).Error

	return domainerrors.NewDatabaseExecuteError("create lockout state", err)
}

// GetOrCreateForUpdate inserts the open state if missing, then reads the row
// with SELECT ... FOR UPDATE. Two failed logins racing on one account queue
// on the row lock, so neither increment is lost.
func (repo *lockoutRepository) GetOrCreateForUpdate(ctx context.Context, accountID uuid.UUID) (*entity.LockoutState, error) {
	if err := repo.Create(ctx, entity.NewLockoutState(accountID, time.Now().UTC())); err != nil {
		return nil, err
	}

	var stateM model.LockoutStateModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("account_id = ?", accountID).
		First(&stateM).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to lock lockout state")
	}

	return toLockoutDomain(&stateM), nil
}

func (repo *lockoutRepository) Save(ctx context.Context, state *entity.LockoutState) error {
	err := repo.db.WithContext(ctx).
		Model(&model.LockoutStateModel{}).
		Where("account_id = ?", state.AccountID).
		Select("failed_attempts", "last_failed_at", "is_locked", "locked_until", "updated_at").
		Updates(fromLockoutDomain(state)).Error

	return domainerrors.NewDatabaseExecuteError("save lockout state", err)
}

func toLockoutDomain(data *model.LockoutStateModel) *entity.LockoutState {
	if data == nil {
		return nil
	}

	return &entity.LockoutState{
		AccountID:      data.AccountID,
		FailedAttempts: data.FailedAttempts,
		LastFailedAt:   data.LastFailedAt,
		IsLocked:       data.IsLocked,
		LockedUntil:    data.LockedUntil,
		UpdatedAt:      data.UpdatedAt,
	}
}

func fromLockoutDomain(data *entity.LockoutState) *model.LockoutStateModel {
	if data == nil {
		return nil
	}

	return &model.LockoutStateModel{
		AccountID:      data.AccountID,
		FailedAttempts: data.FailedAttempts,
		LastFailedAt:   data.LastFailedAt,
		IsLocked:       data.IsLocked,
		LockedUntil:    data.LockedUntil,
		UpdatedAt:      data.UpdatedAt,
	}
}
