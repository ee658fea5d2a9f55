package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeProfile attaches HR data to an account and records the reporting line.
type EmployeeProfile struct {
	ID         uuid.UUID
	AccountID  uuid.UUID  // One-to-one with Account.
	ManagerID  *uuid.UUID // Profile of the direct manager, if any.
	JobTitle   string
	Department string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ReportsTo reports whether managerProfileID is the direct manager.
func (p *EmployeeProfile) ReportsTo(managerProfileID uuid.UUID) bool {
	return p.ManagerID != nil && *p.ManagerID == managerProfileID
}
