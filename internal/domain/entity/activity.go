package entity

import (
	"time"

	"github.com/google/uuid"
)

// ActivityAction is the audited event type.
type ActivityAction string

const (
	ActivityLogin  ActivityAction = "LOGIN"
	ActivityLogout ActivityAction = "LOGOUT"
)

// Activity reason codes stored under ExtraReason.
const (
	ActivityReasonLocked          = "locked"
	ActivityReasonInvalidPassword = "invalid_password"
	ActivityReasonInactive        = "inactive"
)

// Keys of ActivityRecord.Extra.
const (
	ExtraReason            = "reason"
	ExtraSecondsLeft       = "seconds_left"
	ExtraMinutesLeft       = "minutes_left"
	ExtraFailedAttempts    = "failed_attempts"
	ExtraRemainingAttempts = "remaining_attempts"
)

// ActivityRecord is an immutable audit row; the log is append-only.
type ActivityRecord struct {
	ID         string         // ULID; sorts by creation time.
	AccountID  uuid.UUID
	Action     ActivityAction
	Success    bool
	OccurredAt time.Time
	IPAddress  string
	UserAgent  string
	Extra      map[string]any // Reason codes and counters; nil on plain success.
}

// ClientInfo identifies the calling device for audit purposes.
type ClientInfo struct {
	IPAddress string
	UserAgent string
}
