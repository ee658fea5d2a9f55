package impl

import (
	"context"

	"smarthr/config"
	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/repository"
	"smarthr/internal/domain/service"
	"smarthr/internal/errors"

	"github.com/google/uuid"
)

// lockoutTracker applies the failed-login policy to LockoutState rows. Every
// method runs inside the caller's transaction and expects the row lock taken
// by acquire to be held until commit.
type lockoutTracker struct {
	policy entity.LockoutPolicy
	clock  service.Clock
}

func newLockoutTracker(cfg *config.AuthConfig, clock service.Clock) *lockoutTracker {
	return &lockoutTracker{
		policy: entity.LockoutPolicy{
			MaxAttempts: cfg.MaxLoginAttempts,
			Window:      cfg.LockoutWindow,
		},
		clock: clock,
	}
}

// acquire locks the account's state row, creating it if needed, and heals an
// elapsed lock before returning.
func (t *lockoutTracker) acquire(ctx context.Context, repo repository.LockoutRepository, accountID uuid.UUID) (*entity.LockoutState, error) {
	state, err := repo.GetOrCreateForUpdate(ctx, accountID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to acquire lockout state")
	}

	if _, healed := state.CheckLockStatus(t.clock.Now()); healed {
		if err := repo.Save(ctx, state); err != nil {
			return nil, errors.Wrap(err, "failed to persist healed lockout state")
		}
	}

	return state, nil
}

// recordFailure counts a wrong password and reports whether it locked the account.
func (t *lockoutTracker) recordFailure(ctx context.Context, repo repository.LockoutRepository, state *entity.LockoutState) (bool, error) {
	justLocked := state.RecordFailure(t.clock.Now(), t.policy)
	if err := repo.Save(ctx, state); err != nil {
		return false, errors.Wrap(err, "failed to record login failure")
	}

	return justLocked, nil
}

// recordSuccess clears the counter. Untouched states are not rewritten.
func (t *lockoutTracker) recordSuccess(ctx context.Context, repo repository.LockoutRepository, state *entity.LockoutState) error {
	if state.FailedAttempts == 0 && !state.IsLocked {
		return nil
	}
	state.Reset(t.clock.Now())

	return errors.Wrap(repo.Save(ctx, state), "failed to reset lockout state")
}

// unlock resets the state regardless of the remaining window.
func (t *lockoutTracker) unlock(ctx context.Context, repo repository.LockoutRepository, accountID uuid.UUID) error {
	state, err := repo.GetOrCreateForUpdate(ctx, accountID)
	if err != nil {
		return errors.Wrap(err, "failed to acquire lockout state")
	}

	return t.recordSuccess(ctx, repo, state)
}

func (t *lockoutTracker) remainingAttempts(state *entity.LockoutState) int {
	return state.RemainingAttempts(t.policy)
}
