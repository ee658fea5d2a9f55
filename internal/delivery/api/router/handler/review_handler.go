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

// ReviewHandler serves performance reviews and their scored items.
type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

type ReviewHandlerParams struct {
	fx.In

	Usecase usecase.ReviewUsecase
}

func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{uc: params.Usecase}
}

type createReviewRequest struct {
	EmployeeID uuid.UUID `json:"employee_id" validate:"required"`
}

type updateReviewRequest struct {
	ManagerComment  *string `json:"manager_comment"`
	EmployeeComment *string `json:"employee_comment"`
}

type submitReviewRequest struct {
	ManagerComment *string `json:"manager_comment"`
}

type acknowledgeReviewRequest struct {
	EmployeeComment *string `json:"employee_comment"`
}

type reviewItemRequest struct {
	Criteria string  `json:"criteria" validate:"max=255"`
	Score    *int    `json:"score"`
	Comment  *string `json:"comment"`
}

func (r *reviewItemRequest) input() *usecase.ReviewItemInput {
	return &usecase.ReviewItemInput{
		Criteria: r.Criteria,
		Score:    r.Score,
		Comment:  r.Comment,
	}
}

// Create handles POST /api/reviews.
func (h *ReviewHandler) Create(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.uc.Create(c.Request().Context(), caller, req.EmployeeID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newReviewResponse(review))
}

// Get handles GET /api/reviews/:id.
func (h *ReviewHandler) Get(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	reviewID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	review, err := h.uc.Get(c.Request().Context(), caller, reviewID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewResponse(review))
}

// Update handles PATCH /api/reviews/:id.
func (h *ReviewHandler) Update(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	reviewID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req updateReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.uc.Update(c.Request().Context(), caller, reviewID, &usecase.UpdateReviewInput{
		ManagerComment:  req.ManagerComment,
		EmployeeComment: req.EmployeeComment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewResponse(review))
}

// Submit handles POST /api/reviews/:id/submit.
func (h *ReviewHandler) Submit(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	reviewID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req submitReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.uc.Submit(c.Request().Context(), caller, reviewID, req.ManagerComment)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewResponse(review))
}

// Acknowledge handles POST /api/reviews/:id/acknowledge.
func (h *ReviewHandler) Acknowledge(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	reviewID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req acknowledgeReviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.uc.Acknowledge(c.Request().Context(), caller, reviewID, req.EmployeeComment)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewResponse(review))
}

// ListItems handles GET /api/reviews/:id/items.
func (h *ReviewHandler) ListItems(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	reviewID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.uc.ListItems(c.Request().Context(), caller, reviewID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewItemResponses(items))
}

// AddItem handles POST /api/reviews/:id/items.
func (h *ReviewHandler) AddItem(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	reviewID, err := pathUUID(c, "id")
	if err != nil {
		return err
	}

	var req reviewItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.uc.AddItem(c.Request().Context(), caller, reviewID, req.input())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newReviewItemResponse(item))
}

// UpdateItem handles PATCH /api/reviews/items/:item_id.
func (h *ReviewHandler) UpdateItem(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "item_id")
	if err != nil {
		return err
	}

	var req reviewItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.uc.UpdateItem(c.Request().Context(), caller, itemID, req.input())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newReviewItemResponse(item))
}

// DeleteItem handles DELETE /api/reviews/items/:item_id.
func (h *ReviewHandler) DeleteItem(c echo.Context) error {
	caller, err := principal(c)
	if err != nil {
		return err
	}
	itemID, err := pathUUID(c, "item_id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteItem(c.Request().Context(), caller, itemID); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
