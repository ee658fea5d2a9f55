package repository

import (
	"context"

	"smarthr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrEmployeeNotFound      = errors.New("employee profile not found")
	ErrEmployeeProfileExists = errors.New("employee profile already exists for account")
)

type EmployeeRepository interface {
	Create(ctx context.Context, profile *entity.EmployeeProfile) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.EmployeeProfile, error)

	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.EmployeeProfile, error)

	// UpdateManager sets or clears the direct manager.
	UpdateManager(ctx context.Context, id uuid.UUID, managerID *uuid.UUID) error
}
