package middleware

import (
	"log/slog"

	deliverycontext "smarthr/internal/delivery/context"
	domainerrors "smarthr/internal/domain/errors"
	"smarthr/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ThrottleMiddleware limits unauthenticated credential endpoints per client IP.
type ThrottleMiddleware struct {
	throttle service.Throttle
	logger   *slog.Logger
}

type ThrottleMiddlewareParams struct {
	fx.In

	Throttle service.Throttle `optional:"true"`
	Logger   *slog.Logger
}

func NewThrottleMiddleware(params ThrottleMiddlewareParams) *ThrottleMiddleware {
	return &ThrottleMiddleware{
		throttle: params.Throttle,
		logger:   params.Logger,
	}
}

// Limit keys buckets by route and IP. A backend error lets the request through.
func (m *ThrottleMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	if m.throttle == nil {
		return next
	}

	return func(c echo.Context) error {
		ctx := c.Request().Context()
		key := c.Path() + "|" + c.RealIP()

		allowed, err := m.throttle.Allow(ctx, key)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("Throttle backend unavailable, allowing request",
				slog.String("route", c.Path()),
				slog.Any("error", err),
			)

			return next(c)
		}
		if !allowed {
			deliverycontext.GetLoggerOrDefault(ctx, m.logger).Warn("Request throttled",
				slog.String("route", c.Path()),
				slog.String("remote_ip", c.RealIP()),
			)

			return domainerrors.ErrTooManyRequests
		}

		return next(c)
	}
}
