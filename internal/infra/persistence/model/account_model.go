package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. Email is stored lowercased and a
// unique index on lower(email) is created by the migration command.
type AccountModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email           string    `gorm:"type:varchar(254);not null"`
	Username        string    `gorm:"type:varchar(150);not null;uniqueIndex:idx_accounts_username"`
	PasswordHash    string    `gorm:"type:varchar(255);not null"`
	FirstName       string    `gorm:"type:varchar(150)"`
	LastName        string    `gorm:"type:varchar(150)"`
	Role            string    `gorm:"type:varchar(20);not null"`
	Groups          []string  `gorm:"type:jsonb;serializer:json;not null"`
	IsActive        bool      `gorm:"not null"`
	IsEmailVerified bool      `gorm:"not null"`
	EmailVerifiedAt *time.Time
	IsStaff         bool `gorm:"not null"`
	IsSuperuser     bool `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Lockout *LockoutStateModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// LockoutStateModel mirrors the 'lockout_states' table, one row per account.
type LockoutStateModel struct {
	AccountID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	FailedAttempts int       `gorm:"not null"`
	LastFailedAt   *time.Time
	IsLocked       bool `gorm:"not null"`
	LockedUntil    *time.Time
	UpdatedAt      time.Time
}

// TableName explicitly sets the table name for GORM.
func (LockoutStateModel) TableName() string {
	return "lockout_states"
}
