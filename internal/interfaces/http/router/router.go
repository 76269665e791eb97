// Package router assembles the gin engine from middleware and handlers.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vendorhub/backend/internal/infrastructure/config"
	"github.com/vendorhub/backend/internal/infrastructure/logger"
	"github.com/vendorhub/backend/internal/interfaces/http/handler"
	"github.com/vendorhub/backend/internal/interfaces/http/middleware"
)

// Handlers collects everything the router mounts
type Handlers struct {
	Health   *handler.HealthHandler
	Customer *handler.CustomerHandler
	Category *handler.CategoryHandler
	Admin    *handler.AdminHandler
}

// New builds the gin engine with the standard middleware chain
func New(cfg *config.Config, log *zap.Logger, h Handlers) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
	)

	engine.GET("/healthz", h.Health.Live)
	engine.GET("/readyz", h.Health.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(&cfg.JWT))
	{
		customers := api.Group("/customers")
		{
			customers.GET("", h.Customer.List)
			customers.POST("", h.Customer.Create)
			customers.GET("/:id", h.Customer.Get)
			customers.PATCH("/:id", h.Customer.Update)
			customers.DELETE("/:id", h.Customer.Delete)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", h.Category.List)
			categories.POST("", h.Category.Create)
			categories.DELETE("/:id", h.Category.Delete)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.POST("/leads/search", h.Admin.SearchLeads)
			admin.POST("/overview", h.Admin.Overview)
		}
	}

	return engine
}
