package postgres

import (
	"context"
	"time"

	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/repository"
	"smarthr/internal/errors"
	"smarthr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// accountRepository implements repository.AccountRepository using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// Create persists a new account. The email is lowercased before insert so the
// lower(email) unique index rejects case variants.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.Must(uuid.NewV7())
	}
	account.Email = entity.NormalizeEmail(account.Email)
	if account.Username == "" {
		account.Username = account.Email
	}

	accountM := fromAccountDomain(account)
	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrAccountEmailExists
		}

		return domainerrors.NewDatabaseExecuteError("create account", err)
	}

	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	err := repo.db.WithContext(ctx).
		Where("lower(email) = ?", entity.NormalizeEmail(email)).
		First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

func (repo *accountRepository) List(ctx context.Context) ([]*entity.Account, error) {
	var accountMs []model.AccountModel
	if err := repo.db.WithContext(ctx).Order("email ASC").Find(&accountMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	accounts := make([]*entity.Account, 0, len(accountMs))
	for i := range accountMs {
		accounts = append(accounts, toAccountDomain(&accountMs[i]))
	}

	return accounts, nil
}

func (repo *accountRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	return repo.update(ctx, "update account password", id, &model.AccountModel{
		PasswordHash: passwordHash,
	}, "password_hash")
}

func (repo *accountRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entity.Role, groups entity.Groups) error {
	return repo.update(ctx, "update account role", id, &model.AccountModel{
		Role:   role.String(),
		Groups: groups.ToStrings(),
	}, "role", "groups")
}

func (repo *accountRepository) UpdateGroups(ctx context.Context, id uuid.UUID, groups entity.Groups) error {
	return repo.update(ctx, "update account groups", id, &model.AccountModel{
		Groups: groups.ToStrings(),
	}, "groups")
}

func (repo *accountRepository) MarkEmailVerified(ctx context.Context, id uuid.UUID, verifiedAt time.Time) error {
	return repo.update(ctx, "mark email verified", id, &model.AccountModel{
		IsEmailVerified: true,
		EmailVerifiedAt: &verifiedAt,
	}, "is_email_verified", "email_verified_at")
}

// update writes only the named columns of values. Select keeps zero values
// and lets the json serializer encode groups.
func (repo *accountRepository) update(ctx context.Context, operation string, id uuid.UUID, values *model.AccountModel, columns ...string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		Select(append(columns, "updated_at")).
		Updates(values)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(operation, result.Error)
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:              data.ID,
		Email:           data.Email,
		Username:        data.Username,
		PasswordHash:    data.PasswordHash,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Role:            entity.Role(data.Role),
		Groups:          entity.GroupsFromStrings(data.Groups),
		IsActive:        data.IsActive,
		IsEmailVerified: data.IsEmailVerified,
		EmailVerifiedAt: data.EmailVerifiedAt,
		IsStaff:         data.IsStaff,
		IsSuperuser:     data.IsSuperuser,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:              data.ID,
		Email:           data.Email,
		Username:        data.Username,
		PasswordHash:    data.PasswordHash,
		FirstName:       data.FirstName,
		LastName:        data.LastName,
		Role:            data.Role.String(),
		Groups:          data.Groups.ToStrings(),
		IsActive:        data.IsActive,
		IsEmailVerified: data.IsEmailVerified,
		EmailVerifiedAt: data.EmailVerifiedAt,
		IsStaff:         data.IsStaff,
		IsSuperuser:     data.IsSuperuser,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
