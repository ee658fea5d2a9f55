package auth

import (
	"time"

	"smarthr/config"
	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/service"
	"smarthr/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenClaims is the JWT body: registered claims plus the token type and role.
type tokenClaims struct {
	Type string `json:"type"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  []byte        // Secret key for signing access tokens.
	refreshSecret []byte        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	clock         service.Clock
}

// NewJWTService builds the HS256 token service from the configured secrets and TTLs.
func NewJWTService(cfg *config.Config, clock service.Clock) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.SecretKey.Access == cfg.SecretKey.Refresh {
		return nil, errors.New("access and refresh secrets must differ")
	}

	accessTTL, refreshTTL := 15*time.Minute, 7*24*time.Hour
	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			refreshTTL = cfg.Auth.RefreshTokenTTL
		}
	}

	return &jwtService{
		accessSecret:  []byte(cfg.SecretKey.Access),
		refreshSecret: []byte(cfg.SecretKey.Refresh),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		clock:         clock,
	}, nil
}

func (s *jwtService) TTL(tokenType entity.TokenType) time.Duration {
	if tokenType == entity.TokenTypeRefresh {
		return s.refreshTTL
	}

	return s.accessTTL
}

func (s *jwtService) secret(tokenType entity.TokenType) []byte {
	if tokenType == entity.TokenTypeRefresh {
		return s.refreshSecret
	}

	return s.accessSecret
}

// Generate signs a token with a fresh jti.
func (s *jwtService) Generate(account *entity.Account, tokenType entity.TokenType) (string, *entity.TokenClaims, error) {
	now := s.clock.Now().Truncate(time.Second)
	expiresAt := now.Add(s.TTL(tokenType))
	jti := uuid.New()

	claims := tokenClaims{
		Type: string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti.String(),
			Subject:   account.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	// Only access tokens carry the role; refresh re-reads the account.
	if tokenType == entity.TokenTypeAccess {
		claims.Role = account.Role.String()
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret(tokenType))
	if err != nil {
		return "", nil, errors.Wrap(err, "sign token")
	}

	return signed, &entity.TokenClaims{
		TokenID:   jti,
		AccountID: account.ID,
		Role:      account.Role,
		Type:      tokenType,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse verifies the token with the key of the expected type.
func (s *jwtService) Parse(tokenString string, tokenType entity.TokenType) (*entity.TokenClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return s.secret(tokenType), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(service.ErrTokenExpired, err.Error())
		}

		return nil, errors.Wrap(service.ErrTokenMalformed, err.Error())
	}

	if claims.Type != string(tokenType) {
		return nil, errors.WithStack(service.ErrTokenWrongType)
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenMalformed, "subject is not a uuid")
	}
	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return nil, errors.Wrap(service.ErrTokenMalformed, "jti is not a uuid")
	}

	return &entity.TokenClaims{
		TokenID:   jti,
		AccountID: accountID,
		Role:      entity.Role(claims.Role),
		Type:      tokenType,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
