package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicy = LockoutPolicy{MaxAttempts: 5, Window: 15 * time.Minute}

func TestLockoutState_LocksOnMaxAttempts(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	state := NewLockoutState(uuid.New(), now)

	for i := 1; i < testPolicy.MaxAttempts; i++ {
		justLocked := state.RecordFailure(now, testPolicy)
		assert.False(t, justLocked)
		assert.False(t, state.IsLocked)
		assert.Equal(t, testPolicy.MaxAttempts-i, state.RemainingAttempts(testPolicy))
	}

	justLocked := state.RecordFailure(now, testPolicy)
	assert.True(t, justLocked)
	assert.True(t, state.IsLocked)
	require.NotNil(t, state.LockedUntil)
	assert.Equal(t, now.Add(testPolicy.Window), *state.LockedUntil)
	assert.Equal(t, 0, state.RemainingAttempts(testPolicy))

	// Further failures while locked are not a new transition.
	assert.False(t, state.RecordFailure(now, testPolicy))
	assert.Equal(t, 0, state.RemainingAttempts(testPolicy))
}

func TestLockoutState_CheckLockStatusHealsOnce(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	state := NewLockoutState(uuid.New(), now)
	for range testPolicy.MaxAttempts {
		state.RecordFailure(now, testPolicy)
	}

	locked, healed := state.CheckLockStatus(now.Add(time.Minute))
	assert.True(t, locked)
	assert.False(t, healed)

	expired := now.Add(testPolicy.Window)
	locked, healed = state.CheckLockStatus(expired)
	assert.False(t, locked)
	assert.True(t, healed)
	assert.Equal(t, 0, state.FailedAttempts)
	assert.Nil(t, state.LockedUntil)

	for range 3 {
		locked, healed = state.CheckLockStatus(expired.Add(time.Second))
		assert.False(t, locked)
		assert.False(t, healed)
	}
}

func TestLockoutState_LockedWithoutExpiryReadsOpen(t *testing.T) {
	state := &LockoutState{IsLocked: true, FailedAttempts: 5}

	locked, healed := state.CheckLockStatus(time.Now())
	assert.False(t, locked)
	assert.True(t, healed)
}

func TestLockoutState_MinutesRemaining(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(30 * time.Second)
	state := &LockoutState{IsLocked: true, LockedUntil: &until}

	assert.Equal(t, 30, state.SecondsRemaining(now))
	assert.Equal(t, 1, state.MinutesRemaining(now))

	until = now.Add(14*time.Minute + 59*time.Second)
	assert.Equal(t, 14, state.MinutesRemaining(now))

	assert.Equal(t, 0, state.MinutesRemaining(now.Add(time.Hour)))
}

func TestLockoutState_ResetClearsEverything(t *testing.T) {
	now := time.Now()
	state := NewLockoutState(uuid.New(), now)
	for range testPolicy.MaxAttempts {
		state.RecordFailure(now, testPolicy)
	}

	state.Reset(now)
	assert.False(t, state.IsLocked)
	assert.Nil(t, state.LockedUntil)
	assert.Equal(t, 0, state.FailedAttempts)
	assert.Equal(t, testPolicy.MaxAttempts, state.RemainingAttempts(testPolicy))
}
