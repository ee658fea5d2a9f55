// Package handler contains the HTTP handlers for the application.
package handler

import (
	deliverycontext "smarthr/internal/delivery/context"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// bindAndValidate decodes the body and runs the struct tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithMessage("Malformed request body")
	}

	return c.Validate(req)
}

// principal returns the caller. Routes using it sit behind Authenticate, so a
// miss means the route was wired without it.
func principal(c echo.Context) (policy.Principal, error) {
	p, ok := deliverycontext.GetPrincipal(c)
	if !ok {
		return policy.Principal{}, domainerrors.ErrUnauthorized
	}

	return *p, nil
}

func pathUUID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{name: "must be a UUID"})
	}

	return id, nil
}

// queryLimit reads ?limit=; zero means the service default.
func queryLimit(c echo.Context) (int, error) {
	var limit int
	if err := echo.QueryParamsBinder(c).Int("limit", &limit).BindError(); err != nil || limit < 0 {
		return 0, domainerrors.ErrValidationFailed.WithPublicDetails(map[string]string{"limit": "must be a non-negative integer"})
	}

	return limit, nil
}
