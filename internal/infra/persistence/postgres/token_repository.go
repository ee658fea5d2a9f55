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
)

// tokenRepository implements repository.TokenRepository using GORM.
type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository is the constructor for tokenRepository.
func NewTokenRepository(db *gorm.DB) repository.TokenRepository {
	return &tokenRepository{db: db}
}

func (repo *tokenRepository) SaveIssued(ctx context.Context, token *entity.IssuedRefreshToken) error {
	err := repo.db.WithContext(ctx).Create(&model.IssuedRefreshTokenModel{
		TokenID:   token.TokenID,
		AccountID: token.AccountID,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.ExpiresAt,
	}).Error

	return domainerrors.NewDatabaseExecuteError("save issued refresh token", err)
}

func (repo *tokenRepository) IsBlacklisted(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.BlacklistedTokenModel{}).
		Where("token_id = ?", tokenID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check token blacklist")
	}

	return count > 0, nil
}

// Blacklist relies on the token_id primary key: of two concurrent rotations
// of the same refresh token, only one insert commits.
func (repo *tokenRepository) Blacklist(ctx context.Context, entry *entity.BlacklistedToken) error {
	err := repo.db.WithContext(ctx).Create(&model.BlacklistedTokenModel{
		TokenID:       entry.TokenID,
		AccountID:     entry.AccountID,
		Reason:        string(entry.Reason),
		BlacklistedAt: entry.BlacklistedAt,
		ExpiresAt:     entry.ExpiresAt,
	}).Error
	if err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrTokenAlreadyBlacklisted
		}

		return domainerrors.NewDatabaseExecuteError("blacklist token", err)
	}

	return nil
}
