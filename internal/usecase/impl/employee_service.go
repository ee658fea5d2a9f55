package impl

import (
	"context"
	"log/slog"

	deliverycontext "smarthr/internal/delivery/context"
	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/policy"
	"smarthr/internal/domain/repository"
	"smarthr/internal/domain/service"
	"smarthr/internal/errors"
	"smarthr/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// employeeService implements the EmployeeUsecase interface.
type employeeService struct {
	txManager repository.TransactionManager
	clock     service.Clock
	logger    *slog.Logger
}

// EmployeeServiceParams holds dependencies for EmployeeService, injected by Fx.
type EmployeeServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Clock     service.Clock
	Logger    *slog.Logger
}

func NewEmployeeService(params EmployeeServiceParams) usecase.EmployeeUsecase {
	return &employeeService{
		txManager: params.TxManager,
		clock:     params.Clock,
		logger:    params.Logger,
	}
}

func (srv *employeeService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *employeeService) Create(ctx context.Context, caller policy.Principal, input *usecase.CreateEmployeeInput) (*entity.EmployeeProfile, error) {
	if err := decisionError(policy.RequireHR(caller, policy.Write)); err != nil {
		return nil, err
	}

	now := srv.clock.Now()
	profile := &entity.EmployeeProfile{
		AccountID:  input.AccountID,
		ManagerID:  input.ManagerID,
		JobTitle:   input.JobTitle,
		Department: input.Department,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if _, err := f.AccountRepo().FindByID(ctx, input.AccountID); err != nil {
			return notFound(err, "account")
		}
		if input.ManagerID != nil {
			if err := validateManager(ctx, f, uuid.Nil, *input.ManagerID); err != nil {
				return err
			}
		}

		err := f.EmployeeRepo().Create(ctx, profile)
		if errors.Is(err, repository.ErrEmployeeProfileExists) {
			return domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{"account_id": "account already has an employee profile"})
		}

		return err
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Employee profile created", slog.Any("profileID", profile.ID), slog.Any("accountID", profile.AccountID))

	return profile, nil
}

// Get applies the owned-resource rule: HR, auditors, the employee and the
// direct manager may read.
func (srv *employeeService) Get(ctx context.Context, caller policy.Principal, profileID uuid.UUID) (*entity.EmployeeProfile, error) {
	var profile *entity.EmployeeProfile
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		var err error
		profile, err = f.EmployeeRepo().FindByID(ctx, profileID)

		return notFound(err, "employee")
	})
	if err != nil {
		return nil, err
	}

	own := policy.Ownership{SubjectAccountID: profile.AccountID, ManagerProfileID: profile.ManagerID}
	if err := decisionError(policy.CanAccessOwned(caller, own, policy.Read)); err != nil {
		return nil, err
	}

	return profile, nil
}

// SetManager changes the reporting line. HR/ADMIN only.
func (srv *employeeService) SetManager(ctx context.Context, caller policy.Principal, profileID uuid.UUID, managerID *uuid.UUID) (*entity.EmployeeProfile, error) {
	var profile *entity.EmployeeProfile
	err := srv.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		repo := f.EmployeeRepo()

		var err error
		profile, err = repo.FindByID(ctx, profileID)
		if err != nil {
			return notFound(err, "employee")
		}
		if err := decisionError(policy.RequireHR(caller, policy.Write)); err != nil {
			return err
		}
		if managerID != nil {
			if err := validateManager(ctx, f, profileID, *managerID); err != nil {
				return err
			}
		}

		if err := repo.UpdateManager(ctx, profileID, managerID); err != nil {
			return notFound(err, "employee")
		}
		profile.ManagerID = managerID
		profile.UpdatedAt = srv.clock.Now()

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Employee manager changed", slog.Any("profileID", profileID), slog.Any("managerID", managerID))

	return profile, nil
}

// validateManager requires an existing profile, other than the employee's
// own, whose account holds MANAGER or above.
func validateManager(ctx context.Context, f repository.RepositoryFactory, profileID, managerID uuid.UUID) error {
	if managerID == profileID {
		return domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{"manager_id": "an employee cannot manage themselves"})
	}

	manager, err := f.EmployeeRepo().FindByID(ctx, managerID)
	if err != nil {
		return notFound(err, "manager")
	}
	account, err := f.AccountRepo().FindByID(ctx, manager.AccountID)
	if err != nil {
		return notFound(err, "manager account")
	}
	if !account.Role.AtLeast(entity.RoleManager) {
		return domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{"manager_id": "manager must hold the MANAGER role or above"})
	}

	return nil
}
