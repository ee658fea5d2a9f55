package usecase

import (
	"context"

	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/policy"

	"github.com/google/uuid"
)

// CreateEmployeeInput attaches an HR profile to an existing account.
type CreateEmployeeInput struct {
	AccountID  uuid.UUID
	ManagerID  *uuid.UUID
	JobTitle   string
	Department string
}

// EmployeeUsecase manages employee profiles and reporting lines.
type EmployeeUsecase interface {
	Create(ctx context.Context, caller policy.Principal, input *CreateEmployeeInput) (*entity.EmployeeProfile, error)
	Get(ctx context.Context, caller policy.Principal, profileID uuid.UUID) (*entity.EmployeeProfile, error)
	SetManager(ctx context.Context, caller policy.Principal, profileID uuid.UUID, managerID *uuid.UUID) (*entity.EmployeeProfile, error)
}
