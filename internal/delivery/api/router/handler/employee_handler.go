package handler

import (
	"net/http"

	"smarthr/internal/delivery/api/response"
	"smarthr/internal/errors"
	"smarthr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// EmployeeHandler serves employee profiles and reporting lines.
type EmployeeHandler struct {
	uc usecase.EmployeeUsecase
}

type EmployeeHandlerParams struct {
	fx.In

	Usecase usecase.EmployeeUsecase
}

func NewEmployeeHandler(params EmployeeHandlerParams) *EmployeeHandler {
	return &EmployeeHandler{uc: params.Usecase}
}

type createEmployeeRequest struct {
	AccountID  uuid.UUID  `json:"account_id" validate:"required"`
	ManagerID  *uuid.UUID `json:"manager_id"`
	JobTitle   string     `json:"job_title" validate:"max=150"`
	Department string     `json:"department" validate:"max=150"`
}

// setManagerRequest clears the manager when manager_id is null or absent.
type setManagerRequest struct {
	ManagerID *uuid.UUID `json:"manager_id"`
}

// Create handles POST /api/hr/employees.
func (h *EmployeeHandler) Create(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}

	var req createEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.uc.Create(c.Request().Context(), caller, &usecase.CreateEmployeeInput{
		AccountID:  req.AccountID,
		ManagerID:  req.ManagerID,
		JobTitle:   req.JobTitle,
		Department: req.Department,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newEmployeeResponse(profile))
}

// Get handles GET /api/hr/employees/:id.
func (h *EmployeeHandler) Get(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	profileID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	profile, err := h.uc.Get(c.Request().Context(), caller, profileID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newEmployeeResponse(profile))
}

// SetManager handles PATCH /api/hr/employees/:id/manager.
func (h *EmployeeHandler) SetManager(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	profileID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req setManagerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.uc.SetManager(c.Request().Context(), caller, profileID, req.ManagerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newEmployeeResponse(profile))
}
