package usecase

import (
	"context"

	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/policy"

	"github.com/google/uuid"
)

// AccountUsecase administers accounts: directory, roles, groups and lockouts.
type AccountUsecase interface {
	List(ctx context.Context, caller policy.Principal) ([]*entity.Account, error)
	ChangeRole(ctx context.Context, caller policy.Principal, accountID uuid.UUID, role entity.Role) (*entity.Account, error)
	AddGroup(ctx context.Context, caller policy.Principal, accountID uuid.UUID, group entity.Group) (*entity.Account, error)
	RemoveGroup(ctx context.Context, caller policy.Principal, accountID uuid.UUID, group entity.Group) (*entity.Account, error)
	Unlock(ctx context.Context, caller policy.Principal, accountID uuid.UUID) error
}

// MaxActivityLimit caps a single activity page.
const MaxActivityLimit = 100

// ActivityUsecase reads the login/logout audit trail.
type ActivityUsecase interface {
	ListOwn(ctx context.Context, caller policy.Principal, limit int) ([]*entity.ActivityRecord, error)
	ListForAccount(ctx context.Context, caller policy.Principal, accountID uuid.UUID, limit int) ([]*entity.ActivityRecord, error)
}
