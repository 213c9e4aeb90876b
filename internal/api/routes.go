package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yegors/poh-perf/internal/briefing"
	"github.com/yegors/poh-perf/internal/config"
	"github.com/yegors/poh-perf/internal/performance"
	"github.com/yegors/poh-perf/pkg/logger"
)

// Router is the API router
type Router struct {
	handler    *Handler
	middleware *Middleware
	config     *config.Config
	logger     *logger.Logger
}

// NewRouter creates a new API router
func NewRouter(perfService *performance.Service, aggregator *briefing.DataAggregator, queryStore QueryStore, config *config.Config, logger *logger.Logger) *Router {
	return &Router{
		handler:    NewHandler(perfService, aggregator, queryStore, config, logger),
		middleware: NewMiddleware(logger),
		config:     config,
		logger:     logger.Named("api-router"),
	}
}

// Routes returns the API routes
func (r *Router) Routes() http.Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(r.middleware.RequestID)
	router.Use(r.middleware.Logger)
	router.Use(r.middleware.Recoverer)
	router.Use(r.middleware.CORS(r.config.Server.CORSAllowedOrigins))

	// API routes
	router.Route("/api/v1", func(router chi.Router) {
		// Health check
		router.Get("/health", r.handler.GetHealth)

		// Dataset metadata
		router.Get("/dataset", r.handler.GetDataset)

		// Atmospheric calculations
		router.Get("/atmosphere", r.handler.GetAtmosphere)
		router.Get("/wind", r.handler.GetWindComponents)

		// Performance queries
		router.Get("/performance/takeoff", r.handler.GetTakeoffPerformance)
		router.Get("/performance/landing", r.handler.GetLandingPerformance)
		router.Get("/performance/climb", r.handler.GetClimbPerformance)

		// Briefing
		router.Post("/briefing", r.handler.CreateBriefing)

		// Query history
		router.Get("/queries", r.handler.GetRecentQueries)
		router.Get("/queries/type/{type}", r.handler.GetQueriesByType)
	})

	// Serve static files from the configured directory
	staticHandler := NewStaticFileHandler(r.config.Server.StaticFilesDir, r.logger)
	router.Handle("/*", staticHandler)

	return router
}
