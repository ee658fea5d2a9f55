package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// This allows the use case layer to handle transactions without depending on a specific DB driver like GORM.
type TransactionManager interface {
	// Execute runs fn within a database transaction. A returned error or a
	// panic rolls back; otherwise the transaction commits.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to one connection or transaction.
type RepositoryFactory interface {
	AccountRepo() AccountRepository
	LockoutRepo() LockoutRepository
	TokenRepo() TokenRepository
	EphemeralTokenRepo() EphemeralTokenRepository
	ActivityRepo() ActivityRepository
	EmployeeRepo() EmployeeRepository
	ReviewRepo() ReviewRepository
}
