// Package entity contains the core business objects of the project.
package entity

import "strings"

// Role is the primary authorization signal. Roles form a strict total order.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleHR       Role = "HR"
	RoleAdmin    Role = "ADMIN"
)

// Rank returns the position of the role in the hierarchy; unknown roles rank 0.
func (r Role) Rank() int {
	switch r {
	case RoleEmployee:
		return 1
	case RoleManager:
		return 2
	case RoleHR:
		return 3
	case RoleAdmin:
		return 4
	default:
		return 0
	}
}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	return r.Rank() > 0
}

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return r.IsValid() && r.Rank() >= other.Rank()
}

// ParseRole accepts any casing; the zero Role is returned for unknown input.
func ParseRole(s string) (Role, bool) {
	role := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", false
	}

	return role, true
}
