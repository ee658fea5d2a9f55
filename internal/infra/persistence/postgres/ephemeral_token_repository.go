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

// ephemeralTokenRepository implements repository.EphemeralTokenRepository using GORM.
type ephemeralTokenRepository struct {
	db *gorm.DB
}

// NewEphemeralTokenRepository is the constructor for ephemeralTokenRepository.
func NewEphemeralTokenRepository(db *gorm.DB) repository.EphemeralTokenRepository {
	return &ephemeralTokenRepository{db: db}
}

func (repo *ephemeralTokenRepository) Create(ctx context.Context, token *entity.EphemeralToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.Must(uuid.NewV7())
	}

	tokenM := fromEphemeralTokenDomain(token)
	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError("create ephemeral token", err)
	}
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

func (repo *ephemeralTokenRepository) FindLatestUnused(ctx context.Context, accountID uuid.UUID, kind entity.EphemeralKind) (*entity.EphemeralToken, error) {
	var tokenM model.EphemeralTokenModel
	err := repo.db.WithContext(ctx).
		Where("account_id = ? AND kind = ? AND is_used = ?", accountID, kind.String(), false).
		Order("created_at DESC").
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEphemeralTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find unused ephemeral token")
	}

	return toEphemeralTokenDomain(&tokenM), nil
}

// FindByValueForUpdate locks the row so two redemptions of one token cannot
// both see it unused.
func (repo *ephemeralTokenRepository) FindByValueForUpdate(ctx context.Context, value string, kind entity.EphemeralKind) (*entity.EphemeralToken, error) {
	var tokenM model.EphemeralTokenModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Where("token = ? AND kind = ?", value, kind.String()).
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEphemeralTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find ephemeral token")
	}

	return toEphemeralTokenDomain(&tokenM), nil
}

func (repo *ephemeralTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := repo.db.WithContext(ctx).Delete(&model.EphemeralTokenModel{}, "id = ?", id).Error

	return domainerrors.NewDatabaseExecuteError("delete ephemeral token", err)
}

func (repo *ephemeralTokenRepository) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.EphemeralTokenModel{}).
		Where("id = ? AND is_used = ?", id, false).
		Updates(map[string]any{"is_used": true, "used_at": usedAt})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError("mark ephemeral token used", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrEphemeralTokenNotFound
	}

	return nil
}

func toEphemeralTokenDomain(data *model.EphemeralTokenModel) *entity.EphemeralToken {
	if data == nil {
		return nil
	}

	return &entity.EphemeralToken{
		ID:        data.ID,
		Kind:      entity.EphemeralKind(data.Kind),
		Token:     data.Token,
		AccountID: data.AccountID,
		CreatedAt: data.CreatedAt,
		IsUsed:    data.IsUsed,
		UsedAt:    data.UsedAt,
	}
}

func fromEphemeralTokenDomain(data *entity.EphemeralToken) *model.EphemeralTokenModel {
	if data == nil {
		return nil
	}

	return &model.EphemeralTokenModel{
		ID:        data.ID,
		Kind:      data.Kind.String(),
		Token:     data.Token,
		AccountID: data.AccountID,
		IsUsed:    data.IsUsed,
		UsedAt:    data.UsedAt,
		CreatedAt: data.CreatedAt,
	}
}
