package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/insightlab/meeting-insights/internal/infrastructure/http/middleware"
	"github.com/insightlab/meeting-insights/pkg/config"
	"github.com/insightlab/meeting-insights/pkg/jwt"
)

// Router holds all handlers
type Router struct {
	cfg              *config.Config
	authMiddleware   *middleware.AuthMiddleware
	queryHandler     *Query
	minutesHandler   *Minutes
	analyticsHandler *Analytics
	datasetHandler   *Dataset
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authMiddleware *middleware.AuthMiddleware,
	queryHandler *Query,
	minutesHandler *Minutes,
	analyticsHandler *Analytics,
	datasetHandler *Dataset,
) *Router {
	return &Router{
		cfg:              cfg,
		authMiddleware:   authMiddleware,
		queryHandler:     queryHandler,
		minutesHandler:   minutesHandler,
		analyticsHandler: analyticsHandler,
		datasetHandler:   datasetHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group, read access for every authenticated client
	v1 := e.Group("/v1", rt.authMiddleware.Authenticate)

	rt.setupQueryRoutes(v1)
	rt.setupMinutesRoutes(v1)
	rt.setupAnalyticsRoutes(v1)
	rt.setupDatasetRoutes(v1)
}

func (rt *Router) setupQueryRoutes(g *echo.Group) {
	g.POST("/query", rt.queryHandler.Ask)
	g.GET("/query/history", rt.queryHandler.History)
}

func (rt *Router) setupMinutesRoutes(g *echo.Group) {
	minutesGroup := g.Group("/minutes")
	minutesGroup.GET("", rt.minutesHandler.List)
	minutesGroup.GET("/values/:column", rt.minutesHandler.Values)
	minutesGroup.GET("/:id", rt.minutesHandler.Get)
}

func (rt *Router) setupAnalyticsRoutes(g *echo.Group) {
	analyticsGroup := g.Group("/analytics")
	analyticsGroup.GET("/summary", rt.analyticsHandler.Summary)
	analyticsGroup.POST("/export", rt.analyticsHandler.Export)
}

func (rt *Router) setupDatasetRoutes(g *echo.Group) {
	datasetGroup := g.Group("/datasets")
	datasetGroup.GET("", rt.datasetHandler.List)

	// Imports change the corpus, so they need the importer role
	datasetGroup.POST("/import", rt.datasetHandler.Import,
		rt.authMiddleware.RequireRole(jwt.RoleImporter))
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
