package main

import (
	"net/http"
	"os"
	"time"

	"dominium-listings/internal/app"
	"dominium-listings/internal/handlers"
	"dominium-listings/internal/middleware"
	"dominium-listings/pkg/config"
	"dominium-listings/pkg/logger"
	"dominium-listings/pkg/metrics"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// App represents the application structure
type App struct {
	Config         *config.Config
	Container      *app.Container
	Router         *gin.Engine
	ImportHandler  *handlers.ImportHandler
	RatesHandler   *handlers.RatesHandler
	ListingHandler *handlers.ListingHandler
	RateLimiter    *middleware.RateLimiter
	Server         *http.Server
	stopCleanup    chan struct{}
}

// Create and initialize a new App instance
func NewApp(cfg *config.Config) *App {
	a := &App{Config: cfg, stopCleanup: make(chan struct{})}

	a.initializeMetrics()
	a.initializeContainer()
	a.initializeRateLimiter()
	a.initializeHandlers()
	a.initializeRouter()

	return a
}

// initialize Prometheus metrics
func (a *App) initializeMetrics() {
	metrics.Init()
}

// connect storage and wire the import services
func (a *App) initializeContainer() {
	c, err := app.Build(a.Config)
	if err != nil {
		logger.GlobalLogger.Errorf("Failed to initialize services: %v", err)
		os.Exit(1)
	}
	a.Container = c
}

// initialize the API rate limiter and the idle-key sweepers
func (a *App) initializeRateLimiter() {
	a.RateLimiter = middleware.NewRateLimiter(rate.Limit(100/60.0), 10)
	go a.RateLimiter.Cleanup(time.Hour, time.Hour, a.stopCleanup)
	go a.Container.Throttle.Cleanup(10*time.Minute, a.Config.Throttle.Window, a.stopCleanup)
}

func (a *App) initializeHandlers() {
	a.ImportHandler = handlers.NewImportHandler(a.Container.Importer)
	a.RatesHandler = handlers.NewRatesHandler(a.Container.Rates)
	a.ListingHandler = handlers.NewListingHandler(a.Container.Listings, a.Container.Images)
}

// set up the Gin router with middleware and routes
func (a *App) initializeRouter() {
	a.Router = gin.New()
	a.setupMiddleware()
	a.setupRoutes()
}

// cleanup operations
func (a *App) cleanup() {
	close(a.stopCleanup)
	a.Container.Close()
}
