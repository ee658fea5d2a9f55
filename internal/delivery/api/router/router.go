// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"smarthr/config"
	"smarthr/internal/delivery/api/middleware"
	"smarthr/internal/delivery/api/router/handler"
	"smarthr/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler        *handler.AuthHandler
	RecoveryHandler    *handler.RecoveryHandler
	AccountHandler     *handler.AccountHandler
	EmployeeHandler    *handler.EmployeeHandler
	ReviewHandler      *handler.ReviewHandler
	HealthHandler      *handler.HealthHandler
	AuthMiddleware     *middleware.AuthMiddleware
	ThrottleMiddleware *middleware.ThrottleMiddleware
	Metrics            *metrics.Registry
	Config             *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler        *handler.AuthHandler
	recoveryHandler    *handler.RecoveryHandler
	accountHandler     *handler.AccountHandler
	employeeHandler    *handler.EmployeeHandler
	reviewHandler      *handler.ReviewHandler
	healthHandler      *handler.HealthHandler
	authMiddleware     *middleware.AuthMiddleware
	throttleMiddleware *middleware.ThrottleMiddleware
	metrics            *metrics.Registry
	config             *config.Config
}

func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:        params.AuthHandler,
		recoveryHandler:    params.RecoveryHandler,
		accountHandler:     params.AccountHandler,
		employeeHandler:    params.EmployeeHandler,
		reviewHandler:      params.ReviewHandler,
		healthHandler:      params.HealthHandler,
		authMiddleware:     params.AuthMiddleware,
		throttleMiddleware: params.ThrottleMiddleware,
		metrics:            params.Metrics,
		config:             params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", r.healthHandler.Live)
	e.GET("/ready", r.healthHandler.Ready)

	if r.config.Metrics != nil && r.config.Metrics.Enabled && r.metrics != nil {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
	}

	authenticate := r.authMiddleware.Authenticate
	throttle := r.throttleMiddleware.Limit

	// Credential endpoints reachable without a token are rate limited per IP.
	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/login", r.authHandler.Login, throttle)
		authGroup.POST("/register", r.authHandler.Register, throttle, r.authMiddleware.OptionalAuthenticate)
		authGroup.POST("/refresh", r.authHandler.Refresh)

		authGroup.POST("/password-reset/request", r.recoveryHandler.RequestPasswordReset, throttle)
		authGroup.POST("/password-reset/confirm", r.recoveryHandler.ConfirmPasswordReset, throttle)
		authGroup.POST("/email/verify/request", r.recoveryHandler.RequestEmailVerification, throttle)
		authGroup.POST("/email/verify/confirm", r.recoveryHandler.ConfirmEmailVerification, throttle)

		authGroup.POST("/logout", r.authHandler.Logout, authenticate)
		authGroup.POST("/change-password", r.authHandler.ChangePassword, authenticate)
		authGroup.GET("/me", r.authHandler.Me, authenticate)
		authGroup.GET("/activity", r.accountHandler.OwnActivity, authenticate)
	}

	usersGroup := authGroup.Group("/users", authenticate)
	{
		usersGroup.GET("", r.accountHandler.List)
		usersGroup.PATCH("/:id/role", r.accountHandler.ChangeRole)
		usersGroup.PUT("/:id/groups/:group", r.accountHandler.AddGroup)
		usersGroup.DELETE("/:id/groups/:group", r.accountHandler.RemoveGroup)
		usersGroup.POST("/:id/unlock", r.accountHandler.Unlock)
		usersGroup.GET("/:id/activity", r.accountHandler.AccountActivity)
	}

	employeesGroup := e.Group("/api/hr/employees", authenticate)
	{
		employeesGroup.POST("", r.employeeHandler.Create)
		employeesGroup.GET("/:id", r.employeeHandler.Get)
		employeesGroup.PATCH("/:id/manager", r.employeeHandler.SetManager)
	}

	reviewsGroup := e.Group("/api/reviews", authenticate)
	{
		reviewsGroup.POST("", r.reviewHandler.Create)
		reviewsGroup.GET("/:id", r.reviewHandler.Get)
		reviewsGroup.PATCH("/:id", r.reviewHandler.Update)
		reviewsGroup.POST("/:id/submit", r.reviewHandler.Submit)
		reviewsGroup.POST("/:id/acknowledge", r.reviewHandler.Acknowledge)
		reviewsGroup.GET("/:id/items", r.reviewHandler.ListItems)
		reviewsGroup.POST("/:id/items", r.reviewHandler.AddItem)
		reviewsGroup.PATCH("/items/:item_id", r.reviewHandler.UpdateItem)
		reviewsGroup.DELETE("/items/:item_id", r.reviewHandler.DeleteItem)
	}
}
