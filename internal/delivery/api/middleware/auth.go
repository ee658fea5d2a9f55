package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "smarthr/internal/delivery/context"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddleware resolves bearer access tokens into the calling principal.
type AuthMiddleware struct {
	auth usecase.AuthUsecase
}

type AuthMiddlewareParams struct {
	fx.In

	Auth usecase.AuthUsecase
}

func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{auth: params.Auth}
}

// Authenticate rejects requests without a valid access token with 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return domainerrors.ErrUnauthorized
		}

		if err := m.resolve(c, token); err != nil {
			return err
		}

		return next(c)
	}
}

// OptionalAuthenticate lets anonymous requests through but still rejects a
// token that is present and invalid.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return next(c)
		}

		if err := m.resolve(c, token); err != nil {
			return err
		}

		return next(c)
	}
}

func (m *AuthMiddleware) resolve(c echo.Context, token string) error {
	req := c.Request()

	principal, err := m.auth.Authenticate(req.Context(), token)
	if err != nil {
		return err
	}

	deliverycontext.SetPrincipal(c, principal)

	ctx := req.Context()
	if logger := deliverycontext.GetLogger(ctx); logger != nil {
		ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("account_id", principal.AccountID.String())))
		c.SetRequest(req.WithContext(ctx))
	}

	return nil
}

func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}
