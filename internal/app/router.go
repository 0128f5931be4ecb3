package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"jazzypay/internal/handler"
	"jazzypay/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	CheckoutHandler *handler.CheckoutHandler
	CallbackHandler *handler.CallbackHandler
	OrderHandler    *handler.OrderHandler
	NewRelicApp     *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Processor-facing callback. Lives outside /v1: the URL is part of the
	// JazzyPay integration contract and reaches us via the buyer's browser.
	router.GET("/callback", deps.CallbackHandler.HandleCallback)

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		v1.POST("/checkout", deps.CheckoutHandler.Initiate)

		orders := v1.Group("/orders")
		{
			orders.GET("/:id", deps.OrderHandler.GetOrder)
			orders.GET("/:id/notices", deps.OrderHandler.GetNotices)
		}
	}

	return router
}
