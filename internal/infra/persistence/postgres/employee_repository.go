package postgres

import (
	"context"

	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/repository"
	"smarthr/internal/errors"
	"smarthr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// employeeRepository implements repository.EmployeeRepository using GORM.
type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository is the constructor for employeeRepository.
func NewEmployeeRepository(db *gorm.DB) repository.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (repo *employeeRepository) Create(ctx context.Context, profile *entity.EmployeeProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.Must(uuid.NewV7())
	}

	profileM := fromEmployeeDomain(profile)
	if err := repo.db.WithContext(ctx).Omit("Account").Create(profileM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrEmployeeProfileExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNotFound.WrapMessage("referenced account or manager does not exist")
		}

		return domainerrors.NewDatabaseExecuteError("create employee profile", err)
	}

	profile.CreatedAt = profileM.CreatedAt
	profile.UpdatedAt = profileM.UpdatedAt

	return nil
}

func (repo *employeeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.EmployeeProfile, error) {
	return repo.findOne(ctx, "id = ?", id)
}

func (repo *employeeRepository) FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.EmployeeProfile, error) {
	return repo.findOne(ctx, "account_id = ?", accountID)
}

func (repo *employeeRepository) findOne(ctx context.Context, query string, arg uuid.UUID) (*entity.EmployeeProfile, error) {
	var profileM model.EmployeeProfileModel
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&profileM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEmployeeNotFound
		}

		return nil, errors.Wrap(err, "failed to find employee profile")
	}

	return toEmployeeDomain(&profileM), nil
}

func (repo *employeeRepository) UpdateManager(ctx context.Context, id uuid.UUID, managerID *uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.EmployeeProfileModel{}).
		Where("id = ?", id).
		Select("manager_id", "updated_at").
		Updates(&model.EmployeeProfileModel{ManagerID: managerID})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return repository.ErrEmployeeNotFound
		}

		return domainerrors.NewDatabaseExecuteError("update employee manager", result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrEmployeeNotFound
	}

	return nil
}

func toEmployeeDomain(data *model.EmployeeProfileModel) *entity.EmployeeProfile {
	if data == nil {
		return nil
	}

	return &entity.EmployeeProfile{
		ID:         data.ID,
		AccountID:  data.AccountID,
		ManagerID:  data.ManagerID,
		JobTitle:   data.JobTitle,
		Department: data.Department,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromEmployeeDomain(data *entity.EmployeeProfile) *model.EmployeeProfileModel {
	if data == nil {
		return nil
	}

	return &model.EmployeeProfileModel{
		ID:         data.ID,
		AccountID:  data.AccountID,
		ManagerID:  data.ManagerID,
		JobTitle:   data.JobTitle,
		Department: data.Department,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
