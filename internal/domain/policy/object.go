package policy

import "github.com/google/uuid"

// Access is the kind of operation attempted on a resource.
type Access int

const (
	Read Access = iota
	Write
)

// Ownership describes who an employee-owned resource belongs to.
type Ownership struct {
	SubjectAccountID uuid.UUID  // Account the resource is about.
	ManagerProfileID *uuid.UUID // Direct manager's profile of that account.
}

// CanAccessOwned is the object-level rule for profiles, skills, reviews and goals:
// HR/ADMIN, auditors reading, the subject, or the subject's direct manager.
func CanAccessOwned(p Principal, own Ownership, access Access) Decision {
	switch {
	case HasHRAccess(p):
		return allow(ReasonHRAccess)
	case access == Read && IsAuditor(p):
		return allow(ReasonAuditorRead)
	case p.AccountID == own.SubjectAccountID:
		return allow(ReasonSelf)
	case IsManagerOf(p, own.ManagerProfileID):
		return allow(ReasonDirectManager)
	default:
		return forbid(ReasonNotOwner)
	}
}

// RequireHR allows HR/ADMIN and, for reads, auditors.
func RequireHR(p Principal, access Access) Decision {
	if HasHRAccess(p) {
		return allow(ReasonHRAccess)
	}
	if access == Read && IsAuditor(p) {
		return allow(ReasonAuditorRead)
	}

	return forbid(ReasonRoleRequired)
}
