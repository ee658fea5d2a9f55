package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is the credential-bearing identity of a person using the system.
type Account struct {
	ID              uuid.UUID  // Global identifier.
	Email           string     // Lowercased, unique ignoring case.
	Username        string     // Compatibility login name; defaults to Email.
	PasswordHash    string     // bcrypt hash.
	FirstName       string
	LastName        string
	Role            Role       // Primary authorization signal.
	Groups          Groups     // Base group projection of Role plus overlay groups.
	IsActive        bool       // Inactive accounts cannot log in.
	IsEmailVerified bool
	EmailVerifiedAt *time.Time // Set together with IsEmailVerified.
	IsStaff         bool
	IsSuperuser     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NormalizeEmail trims and lowercases an address so lookups and uniqueness ignore case.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FullName joins first and last name, falling back to the email.
func (a *Account) FullName() string {
	name := strings.TrimSpace(a.FirstName + " " + a.LastName)
	if name == "" {
		return a.Email
	}

	return name
}

// MarkEmailVerified sets the verified flag and timestamp.
func (a *Account) MarkEmailVerified(now time.Time) {
	a.IsEmailVerified = true
	a.EmailVerifiedAt = &now
}

// ChangeRole updates the role and re-derives the base group projection.
func (a *Account) ChangeRole(role Role) {
	a.Role = role
	a.Groups = a.Groups.SyncWithRole(role)
}
