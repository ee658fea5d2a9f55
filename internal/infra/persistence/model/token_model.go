package model

import (
	"time"

	"github.com/google/uuid"
)

// IssuedRefreshTokenModel mirrors the 'issued_refresh_tokens' table.
type IssuedRefreshTokenModel struct {
	TokenID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	IssuedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (IssuedRefreshTokenModel) TableName() string {
	return "issued_refresh_tokens"
}

// BlacklistedTokenModel mirrors the 'token_blacklist' table. The primary key
// on token_id makes a second insert for the same jti fail.
type BlacklistedTokenModel struct {
	TokenID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason        string    `gorm:"type:varchar(20);not null"`
	BlacklistedAt time.Time `gorm:"not null"`
	ExpiresAt     time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (BlacklistedTokenModel) TableName() string {
	return "token_blacklist"
}

// EphemeralTokenModel mirrors the 'ephemeral_tokens' table holding password
// reset and email verification tokens.
type EphemeralTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Kind      string    `gorm:"type:varchar(32);not null;index:idx_ephemeral_account_kind"`
	Token     string    `gorm:"type:varchar(128);not null;uniqueIndex"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index:idx_ephemeral_account_kind"`
	IsUsed    bool      `gorm:"not null"`
	UsedAt    *time.Time
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EphemeralTokenModel) TableName() string {
	return "ephemeral_tokens"
}
