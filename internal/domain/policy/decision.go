package policy

// Verdict classifies an authorization outcome.
type Verdict int

const (
	// Allow lets the action proceed.
	Allow Verdict = iota
	// DenyForbidden fails the role or ownership check.
	DenyForbidden
	// DenyState passes role and ownership but the resource state rejects the action.
	DenyState
)

// Reasons recorded on decisions.
const (
	ReasonHRAccess      = "hr_access"
	ReasonAuditorRead   = "auditor_read"
	ReasonSelf          = "self"
	ReasonDirectManager = "direct_manager"
	ReasonReviewManager = "review_manager"
	ReasonNotOwner      = "not_owner"
	ReasonRoleRequired  = "role_required"
	ReasonWrongStatus   = "wrong_status"
)

// Decision is the result of an authorization check.
type Decision struct {
	Verdict Verdict
	Reason  string
}

func (d Decision) Allowed() bool {
	return d.Verdict == Allow
}

func allow(reason string) Decision {
	return Decision{Verdict: Allow, Reason: reason}
}

func forbid(reason string) Decision {
	return Decision{Verdict: DenyForbidden, Reason: reason}
}

func blockedByState() Decision {
	return Decision{Verdict: DenyState, Reason: ReasonWrongStatus}
}
