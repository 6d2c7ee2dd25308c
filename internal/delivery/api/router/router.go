// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"noteful/internal/delivery/api/middleware"
	"noteful/internal/delivery/api/router/handler"
	"noteful/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	Registry       *prometheus.Registry
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
	registry       *prometheus.Registry
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
		registry:       params.Registry,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(r.registry)))

	api := e.Group("/api")
	{
		api.POST("/users", r.authHandler.Register)
		api.POST("/login", r.authHandler.Login)
		api.POST("/refresh", r.authHandler.Refresh)

		// Route-level middleware keeps the public POST /api/users untouched.
		api.GET("/users/me", r.authHandler.Me, r.authMiddleware.Authenticate)
	}
}
