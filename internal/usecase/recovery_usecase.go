package usecase

import "context"

// EphemeralRequestOutput is the response to a reset or verification request.
// DebugToken is only filled when debug token exposure is enabled.
type EphemeralRequestOutput struct {
	DebugToken string
}

// RecoveryUsecase handles the emailed single-use token flows. Requests for
// unknown emails succeed without revealing that the account is missing.
type RecoveryUsecase interface {
	RequestPasswordReset(ctx context.Context, email string) (*EphemeralRequestOutput, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) error
	RequestEmailVerification(ctx context.Context, email string) (*EphemeralRequestOutput, error)
	ConfirmEmailVerification(ctx context.Context, token string) error
}
