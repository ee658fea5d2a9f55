// Package model holds the GORM persistence models. They never leave the
// infra layer; repositories map them to domain entities.
package model

// All lists every model in dependency order for schema migration.
func All() []any {
	return []any{
		&AccountModel{},
		&LockoutStateModel{},
		&IssuedRefreshTokenModel{},
		&BlacklistedTokenModel{},
		&EphemeralTokenModel{},
		&ActivityRecordModel{},
		&EmployeeProfileModel{},
		&PerformanceReviewModel{},
		&ReviewItemModel{},
	}
}
