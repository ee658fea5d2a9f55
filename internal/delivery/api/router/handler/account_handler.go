package handler

import (
	"context"
	"net/http"

	"smarthr/internal/delivery/api/response"
	"smarthr/internal/domain/entity"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/policy"
	"smarthr/internal/errors"
	"smarthr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AccountHandler serves the account directory, role and group administration,
// unlocks and the activity audit.
type AccountHandler struct {
	accounts usecase.AccountUsecase
	activity usecase.ActivityUsecase
}

type AccountHandlerParams struct {
	fx.In

	Accounts usecase.AccountUsecase
	Activity usecase.ActivityUsecase
}

func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accounts: params.Accounts,
		activity: params.Activity,
	}
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// List handles GET /api/auth/users.
func (h *AccountHandler) List(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}

	accounts, err := h.accounts.List(c.Request().Context(), caller)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountResponses(accounts))
}

// ChangeRole handles PATCH /api/auth/users/:id/role.
func (h *AccountHandler) ChangeRole(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	accountID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req changeRoleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	role, ok := entity.ParseRole(req.Role)
	if !ok {
		return domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{"role": "unknown role"})
	}

	account, err := h.accounts.ChangeRole(c.Request().Context(), caller, accountID, role)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account))
}

// AddGroup handles PUT /api/auth/users/:id/groups/:group.
func (h *AccountHandler) AddGroup(c echo.Context) error {
	return h.editGroup(c, h.accounts.AddGroup)
}

// RemoveGroup handles DELETE /api/auth/users/:id/groups/:group.
func (h *AccountHandler) RemoveGroup(c echo.Context) error {
	return h.editGroup(c, h.accounts.RemoveGroup)
}

type groupEdit func(ctx context.Context, caller policy.Principal, accountID uuid.UUID, group entity.Group) (*entity.Account, error)

func (h *AccountHandler) editGroup(c echo.Context, edit groupEdit) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	accountID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	group, ok := entity.ParseGroup(c.Param("group"))
	if !ok {
		return domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{"group": "unknown group"})
	}

	account, err := edit(c.Request().Context(), caller, accountID, group)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newAccountResponse(account))
}

// Unlock handles POST /api/auth/users/:id/unlock.
func (h *AccountHandler) Unlock(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	accountID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.accounts.Unlock(c.Request().Context(), caller, accountID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Account unlocked")
}

// OwnActivity handles GET /api/auth/activity.
func (h *AccountHandler) OwnActivity(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}

	records, err := h.activity.ListOwn(c.Request().Context(), caller, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newActivityResponses(records))
}

// AccountActivity handles GET /api/auth/users/:id/activity.
func (h *AccountHandler) AccountActivity(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	accountID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	limit, err := queryLimit(c)
	if err != nil {
		return err
	}

	records, err := h.activity.ListForAccount(c.Request().Context(), caller, accountID, limit)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newActivityResponses(records))
}
