package middleware

import (
	"strconv"
	"time"

	"smarthr/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware records request counts and latency per route template.
type MetricsMiddleware struct {
	registry *metrics.Registry
}

func NewMetricsMiddleware(registry *metrics.Registry) *MetricsMiddleware {
	return &MetricsMiddleware{registry: registry}
}

// Handle must run outside the logger middleware, which resolves errors into
// responses so the final status is known here.
func (m *MetricsMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		inFlight := m.registry.InFlight()
		inFlight.Inc()
		defer inFlight.Dec()

		start := time.Now()
		err := next(c)

		route := c.Path()
		if route == "" {
			route = "unmatched"
		}
		m.registry.ObserveHTTP(c.Request().Method, route, strconv.Itoa(c.Response().Status), time.Since(start).Seconds())

		return err
	}
}
