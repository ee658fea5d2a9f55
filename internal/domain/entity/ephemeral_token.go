package entity

import (
	"time"

	"github.com/google/uuid"
)

// EphemeralKind distinguishes the single-use tokens delivered by email.
type EphemeralKind string

const (
	EphemeralPasswordReset     EphemeralKind = "password_reset"
	EphemeralEmailVerification EphemeralKind = "email_verification"
)

func (k EphemeralKind) String() string {
	return string(k)
}

func (k EphemeralKind) IsValid() bool {
	return k == EphemeralPasswordReset || k == EphemeralEmailVerification
}

// EphemeralToken is a random, single-use, time-boxed proof of mailbox access.
type EphemeralToken struct {
	ID        uuid.UUID
	Kind      EphemeralKind
	Token     string        // Random URL-safe value; unique.
	AccountID uuid.UUID     // Owner.
	CreatedAt time.Time     // Expiry is CreatedAt plus the kind's TTL.
	IsUsed    bool          // One-way.
	UsedAt    *time.Time
}

// ExpiresAt returns the instant after which the token is rejected.
func (t *EphemeralToken) ExpiresAt(ttl time.Duration) time.Time {
	return t.CreatedAt.Add(ttl)
}

// IsExpired reports whether creation plus ttl lies before now.
func (t *EphemeralToken) IsExpired(now time.Time, ttl time.Duration) bool {
	return t.ExpiresAt(ttl).Before(now)
}

// IsActive means unused and unexpired.
func (t *EphemeralToken) IsActive(now time.Time, ttl time.Duration) bool {
	return !t.IsUsed && !t.IsExpired(now, ttl)
}

// MarkUsed consumes the token. Calling it twice keeps the first timestamp.
func (t *EphemeralToken) MarkUsed(now time.Time) {
	if t.IsUsed {
		return
	}
	t.IsUsed = true
	t.UsedAt = &now
}
