package main

import (
	"context"
	"net/http"
	"time"

	"dominium-listings/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRoutes configures all routes
func (a *App) setupRoutes() {
	a.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	a.setupHealthCheck()
	a.setupAPIRoutes()
}

// setupHealthCheck configures health check endpoint
func (a *App) setupHealthCheck() {
	a.Router.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := a.Container.Health(ctx); err != nil {
			logger.GlobalLogger.Printf("Health check failed: %v", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// setupAPIRoutes configures API routes
func (a *App) setupAPIRoutes() {
	api := a.Router.Group("/api")
	{
		imports := api.Group("/imports")
		{
			imports.POST("/html", a.ImportHandler.ImportHTML)
			imports.POST("/link", a.ImportHandler.ImportLink)
		}
		api.GET("/exchange-rates", a.RatesHandler.GetRates)
		api.GET("/listings/:id", a.ListingHandler.GetListing)
	}
}
