package policy

import (
	"smarthr/internal/domain/entity"

	"github.com/google/uuid"
)

// ReviewSubject is the metadata a review check needs.
type ReviewSubject struct {
	Owner     Ownership           // Employee under review.
	ManagerID *uuid.UUID          // Review's manager profile.
	Status    entity.ReviewStatus //
}

// UpdateScope limits which review fields a permitted update may touch.
type UpdateScope int

const (
	ScopeNone UpdateScope = iota
	ScopeEmployeeComment
	ScopeAll
)

func isReviewManager(p Principal, r ReviewSubject) bool {
	return IsManagerOf(p, r.ManagerID)
}

// CanViewReview follows the owned-resource rule, widened to the review's own manager.
func CanViewReview(p Principal, r ReviewSubject) Decision {
	if d := CanAccessOwned(p, r.Owner, Read); d.Allowed() {
		return d
	}
	if isReviewManager(p, r) {
		return allow(ReasonReviewManager)
	}

	return forbid(ReasonNotOwner)
}

// CanUpdateReview decides the PATCH scope. HR/ADMIN edit any field in any
// status. The review's manager edits everything while DRAFT. The employee may
// only touch their own comment while DRAFT.
func CanUpdateReview(p Principal, r ReviewSubject) (UpdateScope, Decision) {
	switch {
	case HasHRAccess(p):
		return ScopeAll, allow(ReasonHRAccess)
	case isReviewManager(p, r):
		if r.Status != entity.ReviewDraft {
			return ScopeNone, blockedByState()
		}

		return ScopeAll, allow(ReasonReviewManager)
	case p.AccountID == r.Owner.SubjectAccountID:
		if r.Status != entity.ReviewDraft {
			return ScopeNone, blockedByState()
		}

		return ScopeEmployeeComment, allow(ReasonSelf)
	default:
		return ScopeNone, forbid(ReasonNotOwner)
	}
}

// CanSubmitReview: HR/ADMIN or the review's manager, DRAFT only. The source
// state is part of the transition, so nobody submits twice.
func CanSubmitReview(p Principal, r ReviewSubject) Decision {
	var d Decision
	switch {
	case HasHRAccess(p):
		d = allow(ReasonHRAccess)
	case isReviewManager(p, r):
		d = allow(ReasonReviewManager)
	default:
		return forbid(ReasonRoleRequired)
	}
	if r.Status != entity.ReviewDraft {
		return blockedByState()
	}

	return d
}

// CanAcknowledgeReview: only the employee under review, SUBMITTED only.
func CanAcknowledgeReview(p Principal, r ReviewSubject) Decision {
	if p.AccountID != r.Owner.SubjectAccountID {
		return forbid(ReasonNotOwner)
	}
	if r.Status != entity.ReviewSubmitted {
		return blockedByState()
	}

	return allow(ReasonSelf)
}

// CanEditReviewItems: HR/ADMIN in any status, the review's manager while DRAFT.
func CanEditReviewItems(p Principal, r ReviewSubject) Decision {
	switch {
	case HasHRAccess(p):
		return allow(ReasonHRAccess)
	case isReviewManager(p, r):
		if r.Status != entity.ReviewDraft {
			return blockedByState()
		}

		return allow(ReasonReviewManager)
	default:
		return forbid(ReasonRoleRequired)
	}
}

// CanCreateReview: MANAGER and above. A manager may only review direct reports.
func CanCreateReview(p Principal, employee Ownership) Decision {
	switch {
	case HasHRAccess(p):
		return allow(ReasonHRAccess)
	case IsManagerOf(p, employee.ManagerProfileID):
		return allow(ReasonDirectManager)
	case HasManagerAccess(p):
		return forbid(ReasonNotOwner)
	default:
		return forbid(ReasonRoleRequired)
	}
}
