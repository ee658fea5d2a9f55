package impl

import (
	"context"
	"log/slog"

	"smarthr/config"
	deliverycontext "smarthr/internal/delivery/context"
	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/policy"
	"smarthr/internal/domain/repository"
	"smarthr/internal/domain/service"
	"smarthr/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	lockout   *lockoutTracker
	logger    *slog.Logger
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Clock     service.Clock
	Config    *config.Config
	Logger    *slog.Logger
}

func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager: params.TxManager,
		lockout:   newLockoutTracker(params.Config.Auth, params.Clock),
		logger:    params.Logger,
	}
}

func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// List is the read-only directory: HR/ADMIN and auditors.
func (srv *accountService) List(ctx context.Context, caller policy.Principal) ([]*entity.Account, error) {
	if err := decisionError(policy.RequireHR(caller, policy.Read)); err != nil {
		return nil, err
	}

	var accounts []*entity.Account
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		var err error
		accounts, err = f.AccountRepo().List(ctx)

		return err
	})

	return accounts, err
}

// ChangeRole is ADMIN only. The base group follows the new role while overlay
// groups are kept, all in the same transaction as the role write.
func (srv *accountService) ChangeRole(ctx context.Context, caller policy.Principal, accountID uuid.UUID, role entity.Role) (*entity.Account, error) {
	if !policy.IsAdmin(caller) {
		return nil, domainerrors.ErrPermissionDenied.WithDetails(policy.ReasonRoleRequired)
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{"role": "unknown role"})
	}

	account, err := srv.mutate(ctx, accountID, func(repo repository.AccountRepository, account *entity.Account) error {
		account.ChangeRole(role)

		return repo.UpdateRole(ctx, account.ID, account.Role, account.Groups)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account role changed",
		slog.Any("callerID", caller.AccountID), slog.Any("accountID", accountID), slog.String("role", role.String()))

	return account, nil
}

func (srv *accountService) AddGroup(ctx context.Context, caller policy.Principal, accountID uuid.UUID, group entity.Group) (*entity.Account, error) {
	return srv.editGroup(ctx, caller, accountID, group, entity.Groups.With)
}

func (srv *accountService) RemoveGroup(ctx context.Context, caller policy.Principal, accountID uuid.UUID, group entity.Group) (*entity.Account, error) {
	return srv.editGroup(ctx, caller, accountID, group, entity.Groups.Without)
}

// editGroup only touches overlay groups; base groups are owned by the role.
func (srv *accountService) editGroup(
	ctx context.Context,
	caller policy.Principal,
	accountID uuid.UUID,
	group entity.Group,
	apply func(entity.Groups, entity.Group) entity.Groups,
) (*entity.Account, error) {
	if !policy.IsSecurityAdmin(caller) {
		return nil, domainerrors.ErrPermissionDenied.WithDetails(policy.ReasonRoleRequired)
	}
	if !group.IsOverlay() {
		return nil, domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{"group": "only overlay groups can be edited"})
	}

	account, err := srv.mutate(ctx, accountID, func(repo repository.AccountRepository, account *entity.Account) error {
		account.Groups = apply(account.Groups, group)

		return repo.UpdateGroups(ctx, account.ID, account.Groups)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account groups changed",
		slog.Any("callerID", caller.AccountID), slog.Any("accountID", accountID), slog.Any("groups", account.Groups.ToStrings()))

	return account, nil
}

func (srv *accountService) mutate(ctx context.Context, accountID uuid.UUID, fn func(repository.AccountRepository, *entity.Account) error) (*entity.Account, error) {
	var account *entity.Account
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		repo := f.AccountRepo()

		var err error
		account, err = repo.FindByID(ctx, accountID)
		if err != nil {
			return notFound(err, "account")
		}

		return fn(repo, account)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Unlock clears a lockout early. ADMIN or SECURITY_ADMIN.
func (srv *accountService) Unlock(ctx context.Context, caller policy.Principal, accountID uuid.UUID) error {
	if !policy.IsSecurityAdmin(caller) {
		return domainerrors.ErrPermissionDenied.WithDetails(policy.ReasonRoleRequired)
	}

	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if _, err := f.AccountRepo().FindByID(ctx, accountID); err != nil {
			return notFound(err, "account")
		}

		return srv.lockout.unlock(ctx, f.LockoutRepo(), accountID)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Warn("Account unlocked manually", slog.Any("callerID", caller.AccountID), slog.Any("accountID", accountID))

	return nil
}
