// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"profilehub/config"
	"profilehub/internal/delivery/api/middleware"
	"profilehub/internal/delivery/api/router/handler"
	"profilehub/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ProfileHandler *handler.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Recorder `optional:"true"`
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	profileHandler *handler.ProfileHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Recorder
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		profileHandler: params.ProfileHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
		config:         params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.config.Metrics != nil && r.config.Metrics.Enabled && r.metrics != nil {
		e.GET(r.config.Metrics.Path, echo.WrapHandler(r.metrics.Handler()))
	}

	// Self-service routes act on the account named by the access token.
	// Attached per route so unknown paths still answer 404.
	auth := r.authMiddleware.Authenticate
	e.GET("/me", r.profileHandler.GetProfile, auth)
	e.PUT("/me", r.profileHandler.UpdateProfile, auth)
	e.PUT("/alterar-senha", r.profileHandler.ChangePassword, auth)
}
