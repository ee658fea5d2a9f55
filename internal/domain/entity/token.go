package entity

import (
	"time"

	"github.com/google/uuid"
)

// TokenType separates access and refresh credentials; each is signed with its own key.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// TokenClaims is the verified content of a signed token.
type TokenClaims struct {
	TokenID   uuid.UUID // jti; blacklist key for refresh tokens.
	AccountID uuid.UUID // sub
	Role      Role      // Role at issue time, informational only.
	Type      TokenType
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is handed to the client after login, registration or refresh.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// IssuedRefreshToken records a refresh token that was handed out, so it can
// be audited and blacklisted by jti.
type IssuedRefreshToken struct {
	TokenID   uuid.UUID
	AccountID uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// BlacklistReason explains why a refresh token was revoked.
type BlacklistReason string

const (
	BlacklistReasonLogout   BlacklistReason = "logout"
	BlacklistReasonRotation BlacklistReason = "rotation"
)

// BlacklistedToken permanently bars a refresh token. Entries are never removed.
type BlacklistedToken struct {
	TokenID       uuid.UUID
	AccountID     uuid.UUID
	Reason        BlacklistReason
	BlacklistedAt time.Time
	ExpiresAt     time.Time       // Original expiry, kept for future pruning.
}
