package model

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeProfileModel mirrors the 'employee_profiles' table. ManagerID
// references another profile.
type EmployeeProfileModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	ManagerID  *uuid.UUID `gorm:"type:uuid;index"`
	JobTitle   string     `gorm:"type:varchar(150)"`
	Department string     `gorm:"type:varchar(150)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Account *AccountModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (EmployeeProfileModel) TableName() string {
	return "employee_profiles"
}

// PerformanceReviewModel mirrors the 'performance_reviews' table.
type PerformanceReviewModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ManagerID       *uuid.UUID `gorm:"type:uuid;index"`
	Status          string     `gorm:"type:varchar(20);not null"`
	ManagerComment  string     `gorm:"type:text"`
	EmployeeComment string     `gorm:"type:text"`
	OverallScore    *float64
	SubmittedAt     *time.Time
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Items []ReviewItemModel `gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (PerformanceReviewModel) TableName() string {
	return "performance_reviews"
}

// ReviewItemModel mirrors the 'review_items' table.
type ReviewItemModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	ReviewID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Criteria  string    `gorm:"type:varchar(255);not null"`
	Score     int       `gorm:"not null"`
	Comment   string    `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewItemModel) TableName() string {
	return "review_items"
}
