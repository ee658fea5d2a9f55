// Package policy evaluates authorization decisions. Every function is pure:
// inputs are the principal and the ownership metadata of the target.
package policy

import (
	"smarthr/internal/domain/entity"

	"github.com/google/uuid"
)

// Principal is the authenticated account as seen by authorization checks.
type Principal struct {
	AccountID uuid.UUID
	Role      entity.Role
	Groups    entity.Groups
	ProfileID *uuid.UUID // Employee profile, if the account has one.
}

// NewPrincipal builds a principal from an account and its optional profile.
func NewPrincipal(account *entity.Account, profile *entity.EmployeeProfile) Principal {
	p := Principal{
		AccountID: account.ID,
		Role:      account.Role,
		Groups:    account.Groups,
	}
	if profile != nil {
		id := profile.ID
		p.ProfileID = &id
	}

	return p
}

func HasRoleAtLeast(p Principal, role entity.Role) bool {
	return p.Role.AtLeast(role)
}

func HasAnyRole(p Principal, roles ...entity.Role) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}

	return false
}

func IsAdmin(p Principal) bool {
	return p.Role == entity.RoleAdmin
}

// HasHRAccess is HR or ADMIN.
func HasHRAccess(p Principal) bool {
	return HasRoleAtLeast(p, entity.RoleHR)
}

// HasManagerAccess is MANAGER or above.
func HasManagerAccess(p Principal) bool {
	return HasRoleAtLeast(p, entity.RoleManager)
}

// InGroup checks an overlay membership. ADMIN passes every group check.
func InGroup(p Principal, group entity.Group) bool {
	return IsAdmin(p) || p.Groups.Contains(group)
}

func IsAuditor(p Principal) bool {
	return InGroup(p, entity.GroupAuditor)
}

func IsSecurityAdmin(p Principal) bool {
	return InGroup(p, entity.GroupSecurityAdmin)
}

func IsSupport(p Principal) bool {
	return InGroup(p, entity.GroupSupport)
}

// IsManagerOf reports whether p manages the profile identified by managerProfileID
// one hop up. Managers of managers get nothing from this check.
func IsManagerOf(p Principal, managerProfileID *uuid.UUID) bool {
	if !HasManagerAccess(p) || p.ProfileID == nil || managerProfileID == nil {
		return false
	}

	return *p.ProfileID == *managerProfileID
}
