package handler

import (
	"net/http"

	"smarthr/internal/delivery/api/response"
	"smarthr/internal/errors"
	"smarthr/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	resetRequestedMessage  = "If an account exists for this email, a password reset link has been sent."
	verifyRequestedMessage = "If an account exists for this email, a verification link has been sent."
)

// RecoveryHandler serves password reset and email verification.
type RecoveryHandler struct {
	uc usecase.RecoveryUsecase
}

type RecoveryHandlerParams struct {
	fx.In

	Usecase usecase.RecoveryUsecase
}

func NewRecoveryHandler(params RecoveryHandlerParams) *RecoveryHandler {
	return &RecoveryHandler{uc: params.Usecase}
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetConfirmRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type verifyConfirmRequest struct {
	Token string `json:"token" validate:"required"`
}

// RequestPasswordReset always answers with the same message.
func (h *RecoveryHandler) RequestPasswordReset(c echo.Context) error {
	var req emailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.uc.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.MessageData{Message: resetRequestedMessage, DebugToken: out.DebugToken})
}

func (h *RecoveryHandler) ConfirmPasswordReset(c echo.Context) error {
	var req resetConfirmRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.uc.ConfirmPasswordReset(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Password has been reset")
}

func (h *RecoveryHandler) RequestEmailVerification(c echo.Context) error {
	var req emailRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.uc.RequestEmailVerification(c.Request().Context(), req.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.MessageData{Message: verifyRequestedMessage, DebugToken: out.DebugToken})
}

func (h *RecoveryHandler) ConfirmEmailVerification(c echo.Context) error {
	var req verifyConfirmRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.uc.ConfirmEmailVerification(c.Request().Context(), req.Token); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Email verified")
}
