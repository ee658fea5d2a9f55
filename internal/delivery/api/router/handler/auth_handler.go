package handler

import (
	"net/http"

	"smarthr/internal/delivery/api/response"
	deliverycontext "smarthr/internal/delivery/context"
	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/errors"
	"smarthr/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandler serves login, registration and the token lifecycle.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

type AuthHandlerParams struct {
	fx.In

	Usecase usecase.AuthUsecase
}

func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{uc: params.Usecase}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Role      string `json:"role"`
}

type refreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		Client:   deliverycontext.ClientInfo(c),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &authResponse{
		User:   newAccountResponse(output.Account),
		Tokens: newTokensResponse(output.Tokens, true),
	})
}

// Register handles POST /api/auth/register. An authenticated HR or ADMIN
// caller may pick a role above EMPLOYEE.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := &usecase.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if req.Role != "" {
		role, ok := entity.ParseRole(req.Role)
		if !ok {
			return domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{"role": "unknown role"})
		}
		input.Role = role
	}
	if p, ok := deliverycontext.GetPrincipal(c); ok {
		input.Caller = p
	}

	output, err := h.uc.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, &authResponse{
		User:   newAccountResponse(output.Account),
		Tokens: newTokensResponse(output.Tokens, true),
	})
}

// Refresh handles POST /api/auth/refresh. The refresh token is only echoed
// back when it was rotated.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	output, err := h.uc.Refresh(c.Request().Context(), req.Refresh)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTokensResponse(output.Tokens, output.Rotated))
}

// Logout handles POST /api/auth/logout.
func (h *AuthHandler) Logout(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}

	var req refreshRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.uc.Logout(c.Request().Context(), &usecase.LogoutInput{
		AccountID:    caller.AccountID,
		RefreshToken: req.Refresh,
		Client:       deliverycontext.ClientInfo(c),
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Logged out")
}

// ChangePassword handles POST /api/auth/change-password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.uc.ChangePassword(c.Request().Context(), &usecase.ChangePasswordInput{
		AccountID:   caller.AccountID,
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Password changed")
}

// Me handles GET /api/auth/me.
func (h *AuthHandler) Me(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}

	account, err := h.uc.Me(c.Request().Context(), caller.AccountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account))
}
