package service

import "smarthr/internal/domain/entity"

// Login outcomes reported to AuthMetrics.
const (
	LoginOutcomeSuccess         = "success"
	LoginOutcomeInvalidPassword = "invalid_password"
	LoginOutcomeUnknownAccount  = "unknown_account"
	LoginOutcomeLocked          = "locked"
	LoginOutcomeInactive        = "inactive"
)

// Refresh outcomes.
const (
	RefreshOutcomeRotated   = "rotated"
	RefreshOutcomeReissued  = "reissued"
	RefreshOutcomeInvalid   = "invalid"
	RefreshOutcomeExpired   = "expired"
	RefreshOutcomeRevoked   = "revoked"
	RefreshOutcomeLoggedOut = "logged_out"
)

// Ephemeral token events.
const (
	EphemeralEventIssued   = "issued"
	EphemeralEventReused   = "reused"
	EphemeralEventRedeemed = "redeemed"
	EphemeralEventRejected = "rejected"
)

// AuthMetrics receives counters from the auth core.
type AuthMetrics interface {
	LoginAttempt(outcome string)
	AccountLocked()
	TokenRefresh(outcome string)
	EphemeralToken(kind entity.EphemeralKind, event string)
	MailDispatch(outcome string)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) LoginAttempt(string)                         {}
func (NopMetrics) AccountLocked()                              {}
func (NopMetrics) TokenRefresh(string)                         {}
func (NopMetrics) EphemeralToken(entity.EphemeralKind, string) {}
func (NopMetrics) MailDispatch(string)                         {}
