package handler

import (
	"context"
	"log/slog"
	"net/http"

	deliverycontext "smarthr/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ReadinessCheck is a dependency that must answer before traffic is accepted.
type ReadinessCheck interface {
	Name() string
	Check(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	checks []ReadinessCheck
	logger *slog.Logger
}

type HealthHandlerParams struct {
	fx.In

	Checks []ReadinessCheck `group:"readiness"`
	Logger *slog.Logger
}

func NewHealthHandler(params HealthHandlerParams) *HealthHandler {
	return &HealthHandler{
		checks: params.Checks,
		logger: params.Logger,
	}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Live handles GET /health.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{Status: "ok"})
}

// Ready handles GET /ready; any failing check yields 503.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	status := http.StatusOK
	result := healthResponse{Status: "ok", Checks: make(map[string]string, len(h.checks))}
	for _, check := range h.checks {
		if err := check.Check(ctx); err != nil {
			deliverycontext.GetLoggerOrDefault(ctx, h.logger).Warn("Readiness check failed",
				slog.String("check", check.Name()),
				slog.Any("error", err),
			)
			result.Checks[check.Name()] = "unavailable"
			result.Status = "unavailable"
			status = http.StatusServiceUnavailable

			continue
		}
		result.Checks[check.Name()] = "ok"
	}

	return c.JSON(status, result)
}
