package entity

import (
	"time"

	"github.com/google/uuid"
)

// LockoutPolicy is the immutable threshold and window applied to every account.
type LockoutPolicy struct {
	MaxAttempts int
	Window      time.Duration
}

// LockoutState counts consecutive failed logins for one account.
// A locked state always carries LockedUntil; an elapsed LockedUntil reads as open.
type LockoutState struct {
	AccountID      uuid.UUID  // One-to-one with Account.
	FailedAttempts int        // Consecutive failures since the last success or reset.
	LastFailedAt   *time.Time
	IsLocked       bool
	LockedUntil    *time.Time // Non-nil whenever IsLocked was set.
	UpdatedAt      time.Time
}

// NewLockoutState returns the open state for an account.
func NewLockoutState(accountID uuid.UUID, now time.Time) *LockoutState {
	return &LockoutState{AccountID: accountID, UpdatedAt: now}
}

// RecordFailure increments the counter and locks once the threshold is hit.
// It reports whether this call caused the transition into the locked state.
func (s *LockoutState) RecordFailure(now time.Time, policy LockoutPolicy) bool {
	wasLocked := s.IsLocked

	s.FailedAttempts++
	s.LastFailedAt = &now
	s.UpdatedAt = now

	if s.FailedAttempts >= policy.MaxAttempts {
		until := now.Add(policy.Window)
		s.IsLocked = true
		s.LockedUntil = &until
	}

	return !wasLocked && s.IsLocked
}

// Reset returns the state to open with a zero counter.
func (s *LockoutState) Reset(now time.Time) {
	s.FailedAttempts = 0
	s.IsLocked = false
	s.LockedUntil = nil
	s.UpdatedAt = now
}

// CheckLockStatus heals an elapsed lock and reports whether the account is
// still locked. healed is true only on the call that performed the reset.
func (s *LockoutState) CheckLockStatus(now time.Time) (locked, healed bool) {
	if !s.IsLocked {
		return false, false
	}
	if s.LockedUntil == nil || !s.LockedUntil.After(now) {
		s.Reset(now)

		return false, true
	}

	return true, false
}

// RemainingAttempts is MaxAttempts minus the counter, floored at zero.
func (s *LockoutState) RemainingAttempts(policy LockoutPolicy) int {
	return max(policy.MaxAttempts-s.FailedAttempts, 0)
}

// SecondsRemaining is the whole number of seconds until the lock elapses.
func (s *LockoutState) SecondsRemaining(now time.Time) int {
	if !s.IsLocked || s.LockedUntil == nil {
		return 0
	}

	return max(int(s.LockedUntil.Sub(now).Seconds()), 0)
}

// MinutesRemaining rounds down but never reports 0 while time is left.
func (s *LockoutState) MinutesRemaining(now time.Time) int {
	seconds := s.SecondsRemaining(now)
	if seconds <= 0 {
		return 0
	}

	return max(1, seconds/60)
}
