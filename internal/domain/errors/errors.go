package errors

import (
	"net/http"

	"smarthr/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int       // HTTP status code
	ErrorCode() string   // Business error code
	Message() string     // User-friendly error message
	Details() any        // Detailed error information (optional)
	PublicDetails() bool // Details may be shown even on 401/403 responses
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode      int
	errorCode     string
	message       string
	details       any
	publicDetails bool
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message string, details any) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError carrying the same error code, so copies made by
// WithDetails or WithMessage still satisfy errors.Is against the predefined value.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

func (e *BaseError) Message() string {
	return e.message
}

func (e *BaseError) Details() any {
	return e.details
}

func (e *BaseError) PublicDetails() bool {
	return e.publicDetails
}

// WithDetails returns a copy carrying internal details; they are logged, never rendered.
func (e *BaseError) WithDetails(details any) *BaseError {
	c := *e
	c.details = details
	c.publicDetails = false

	return &c
}

// WithPublicDetails returns a copy whose details are always rendered.
func (e *BaseError) WithPublicDetails(details any) *BaseError {
	c := *e
	c.details = details
	c.publicDetails = true

	return &c
}

// WithMessage returns a copy with a different user-facing message.
func (e *BaseError) WithMessage(message string) *BaseError {
	c := *e
	c.message = message

	return &c
}

// Predefined error types
var (
	// Authentication
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		nil,
	)

	ErrAccountLocked = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_LOCKED",
		"Account temporarily locked",
		nil,
	)

	ErrAccountInactive = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_INACTIVE",
		"Account is disabled",
		nil,
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Authentication required",
		nil,
	)

	ErrTokenInvalid = NewBaseError(
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"Token is invalid or expired",
		nil,
	)

	// ErrLogoutTokenInvalid is the 400 variant returned by logout.
	ErrLogoutTokenInvalid = NewBaseError(
		http.StatusBadRequest,
		"LOGOUT_TOKEN_INVALID",
		"Token is invalid or already revoked",
		nil,
	)

	ErrEphemeralTokenInvalid = NewBaseError(
		http.StatusBadRequest,
		"EPHEMERAL_TOKEN_INVALID",
		"Invalid, used or expired token",
		nil,
	)

	// Passwords
	ErrWeakPassword = NewBaseError(
		http.StatusBadRequest,
		"WEAK_PASSWORD",
		"Password does not meet the strength requirements",
		nil,
	)

	ErrPasswordMismatch = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_MISMATCH",
		"Current password is incorrect",
		nil,
	)

	ErrPasswordUnchanged = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_UNCHANGED",
		"New password must differ from the current one",
		nil,
	)

	ErrPasswordHashFailed = NewBaseError(
		http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED",
		"Password processing failed",
		nil,
	)

	// Accounts
	ErrEmailExists = NewBaseError(
		http.StatusConflict,
		"EMAIL_EXISTS",
		"An account with this email already exists",
		nil,
	)

	ErrEmailAlreadyVerified = NewBaseError(
		http.StatusBadRequest,
		"EMAIL_ALREADY_VERIFIED",
		"Email address is already verified",
		nil,
	)

	// Authorization and resources
	ErrPermissionDenied = NewBaseError(
		http.StatusForbidden,
		"PERMISSION_DENIED",
		"You do not have permission to perform this action",
		nil,
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		nil,
	)

	ErrInvalidStateTransition = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATE_TRANSITION",
		"The resource does not accept this action in its current state",
		nil,
	)

	// Generic
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		nil,
	)

	ErrTooManyRequests = NewBaseError(
		http.StatusTooManyRequests,
		"TOO_MANY_REQUESTS",
		"Too many requests, slow down",
		nil,
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		nil,
	)
)

// DatabaseExecuteError is the AppError returned when a statement fails; the
// cause stays reachable through Unwrap for logs but never reaches the client.
type DatabaseExecuteError struct {
	operation string
	err       error
}

// NewDatabaseExecuteError wraps err with the failing operation name.
func NewDatabaseExecuteError(operation string, err error) error {
	if err == nil {
		return nil
	}

	return errors.WithStack(&DatabaseExecuteError{operation: operation, err: err})
}

func (e *DatabaseExecuteError) Error() string {
	return errors.Wrapf(e.err, "database execution failed: %s", e.operation).Error()
}

func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

func (e *DatabaseExecuteError) Details() any {
	return e.operation
}

func (e *DatabaseExecuteError) PublicDetails() bool {
	return false
}

// AsAppError extracts the AppError from err's chain.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}

	return nil, false
}
