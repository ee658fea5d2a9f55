package impl

import (
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/policy"
	"smarthr/internal/domain/repository"
	"smarthr/internal/errors"
)

func permissionDenied() error {
	return domainerrors.ErrPermissionDenied
}

// decisionError maps a denied decision to 403 or, for status gates, 400.
func decisionError(d policy.Decision) error {
	switch d.Verdict {
	case policy.Allow:
		return nil
	case policy.DenyState:
		return domainerrors.ErrInvalidStateTransition.WithDetails(d.Reason)
	default:
		return domainerrors.ErrPermissionDenied.WithDetails(d.Reason)
	}
}

// notFound turns repository misses into the 404 AppError and passes
// everything else through.
func notFound(err error, what string) error {
	if errors.IsAny(err,
		repository.ErrAccountNotFound,
		repository.ErrEmployeeNotFound,
		repository.ErrReviewNotFound,
		repository.ErrReviewItemNotFound,
	) {
		return domainerrors.ErrNotFound.WithMessage(what + " not found")
	}

	return err
}
