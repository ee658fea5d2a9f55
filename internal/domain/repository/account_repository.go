// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"smarthr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrAccountNotFound    = errors.New("account not found")
	ErrAccountEmailExists = errors.New("account email already exists")
)

// AccountRepository persists accounts. Email lookups are case-insensitive.
type AccountRepository interface {
	// Create stores a new account. Returns ErrAccountEmailExists when the
	// lowercased email is already taken.
	Create(ctx context.Context, account *entity.Account) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail matches regardless of the case used by the caller.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// List returns every account ordered by email.
	List(ctx context.Context) ([]*entity.Account, error)

	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	// UpdateRole writes role and the group projection together.
	UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role, groups entity.Groups) error

	UpdateGroups(ctx context.Context, id uuid.UUID, groups entity.Groups) error

	MarkEmailVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error
}
