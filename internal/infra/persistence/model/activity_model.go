package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityRecordModel mirrors the append-only 'activity_records' table.
// IDs are ULIDs so the primary key sorts by creation time.
type ActivityRecordModel struct {
	ID         string         `gorm:"type:char(26);primaryKey"`
	AccountID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_activity_account_occurred"`
	Action     string         `gorm:"type:varchar(20);not null"`
	Success    bool           `gorm:"not null"`
	OccurredAt time.Time      `gorm:"not null;index:idx_activity_account_occurred"`
	IPAddress  string         `gorm:"type:varchar(64)"`
	UserAgent  string         `gorm:"type:text"`
	Extra      map[string]any `gorm:"type:jsonb;serializer:json"`
}

// TableName explicitly sets the table name for GORM.
func (ActivityRecordModel) TableName() string {
	return "activity_records"
}
