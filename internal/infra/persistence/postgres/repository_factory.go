package postgres

import (
	"smarthr/internal/domain/repository"

	"gorm.io/gorm"
)

// gormRepositoryFactory hands out repositories bound to one *gorm.DB, which
// is either the pool or an open transaction.
type gormRepositoryFactory struct {
	db *gorm.DB
}

// NewRepositoryFactory binds every repository to db.
func NewRepositoryFactory(db *gorm.DB) repository.RepositoryFactory {
	return &gormRepositoryFactory{db: db}
}

func (f *gormRepositoryFactory) AccountRepo() repository.AccountRepository {
	return NewAccountRepository(f.db)
}

func (f *gormRepositoryFactory) LockoutRepo() repository.LockoutRepository {
	return NewLockoutRepository(f.db)
}

func (f *gormRepositoryFactory) TokenRepo() repository.TokenRepository {
	return NewTokenRepository(f.db)
}

func (f *gormRepositoryFactory) EphemeralTokenRepo() repository.EphemeralTokenRepository {
	return NewEphemeralTokenRepository(f.db)
}

func (f *gormRepositoryFactory) ActivityRepo() repository.ActivityRepository {
	return NewActivityRepository(f.db)
}

func (f *gormRepositoryFactory) EmployeeRepo() repository.EmployeeRepository {
	return NewEmployeeRepository(f.db)
}

func (f *gormRepositoryFactory) ReviewRepo() repository.ReviewRepository {
	return NewReviewRepository(f.db)
}
