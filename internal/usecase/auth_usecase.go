// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"smarthr/internal/domain/entity"
	"smarthr/internal/domain/policy"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
	Client   entity.ClientInfo
}

// RegisterInput defines the data required to create an account. Caller is the
// authenticated principal when an HR user registers someone, nil otherwise.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      entity.Role
	Caller    *policy.Principal
}

// LogoutInput carries the refresh token to revoke.
type LogoutInput struct {
	AccountID    uuid.UUID
	RefreshToken string
	Client       entity.ClientInfo
}

// ChangePasswordInput is submitted by an authenticated account.
type ChangePasswordInput struct {
	AccountID   uuid.UUID
	OldPassword string
	NewPassword string
}

// --- Output DTOs ---

// AuthOutput returns the account with a fresh token pair.
type AuthOutput struct {
	Account *entity.Account
	Tokens  *entity.TokenPair
}

// RefreshOutput holds the new access token and, when rotation is on, the
// replacement refresh token.
type RefreshOutput struct {
	Tokens  *entity.TokenPair
	Rotated bool
}

// AuthUsecase covers login, registration and the token lifecycle.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error)
	Logout(ctx context.Context, input *LogoutInput) error
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
	Me(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)

	// Authenticate resolves a bearer access token into the calling principal.
	Authenticate(ctx context.Context, accessToken string) (*policy.Principal, error)
}
