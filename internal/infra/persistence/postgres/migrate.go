package postgres

import (
	"context"

	"smarthr/internal/errors"
	"smarthr/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// expressionIndexes cannot be declared through struct tags.
var expressionIndexes = []string{
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_email_lower ON accounts (lower(email))`,
	`CREATE INDEX IF NOT EXISTS idx_ephemeral_tokens_unused_created ON ephemeral_tokens (created_at) WHERE NOT is_used`,
}

// Migrate creates or updates every table and the case-insensitive email index.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.All()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}

	return createExpressionIndexes(ctx, db)
}

func createExpressionIndexes(ctx context.Context, db *gorm.DB) error {
	for _, stmt := range expressionIndexes {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return errors.Wrapf(err, "create index: %s", stmt)
		}
	}

	return nil
}
