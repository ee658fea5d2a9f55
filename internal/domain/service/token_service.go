package service

import (
	"time"

	"smarthr/internal/domain/entity"

	"github.com/pkg/errors"
)

// Parse failures. Callers collapse them into one client-facing error but keep
// the distinction for logs and metrics.
var (
	ErrTokenMalformed = errors.New("token malformed or badly signed")
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenWrongType = errors.New("token has the wrong type")
)

// TokenService signs and verifies stateless JWTs.
type TokenService interface {
	// Generate signs a token of the given type for the account. The returned
	// claims carry the fresh jti and expiry.
	Generate(account *entity.Account, tokenType entity.TokenType) (string, *entity.TokenClaims, error)

	// Parse verifies signature, expiry and type.
	Parse(token string, tokenType entity.TokenType) (*entity.TokenClaims, error)

	TTL(tokenType entity.TokenType) time.Duration
}
