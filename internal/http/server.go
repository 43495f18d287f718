package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/license-manager/internal/config"
	issuanceHTTP "github.com/allisson/license-manager/internal/issuance/http"
	"github.com/allisson/license-manager/internal/metrics"
	productHTTP "github.com/allisson/license-manager/internal/product/http"
)

// ReadinessCheck reports whether a dependency can serve requests.
type ReadinessCheck func(ctx context.Context) error

// Server represents the public API server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	checks map[string]ReadinessCheck
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		checks: make(map[string]ReadinessCheck),
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// AddReadinessCheck registers an extra dependency reported by /ready.
func (s *Server) AddReadinessCheck(name string, check ReadinessCheck) {
	s.checks[name] = check
}

// SetupRouter builds the gin engine with all routes and middleware.
//
// ctx bounds background work started by middleware, such as rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	issuanceHandler *issuanceHTTP.IssuanceHandler,
	productHandler *productHTTP.ProductHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	licenses := v1.Group("/licenses")
	{
		licenses.POST("/:id/issue", issuanceHandler.IssueHandler)

		downloadChain := []gin.HandlerFunc{}
		if cfg.RateLimitDownloadEnabled {
			downloadChain = append(downloadChain, issuanceHTTP.DownloadRateLimitMiddleware(
				ctx,
				cfg.RateLimitDownloadRequestsPerSec,
				cfg.RateLimitDownloadBurst,
				s.logger,
			))
		}
		downloadChain = append(downloadChain, issuanceHandler.DownloadHandler)
		licenses.GET("/download", downloadChain...)
	}

	products := v1.Group("/products")
	{
		products.POST("", productHandler.CreateHandler)
		products.GET("/:id/public-key", productHandler.PublicKeyHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports 503 until the database and every registered dependency respond.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	ready := true
	components := gin.H{}

	if s.db == nil || s.db.PingContext(ctx) != nil {
		ready = false
		components["database"] = "error"
	} else {
		components["database"] = "ok"
	}

	for name, check := range s.checks {
		if err := check(ctx); err != nil {
			s.logger.Warn("readiness check failed", slog.String("component", name), slog.Any("error", err))
			ready = false
			components[name] = "error"
			continue
		}
		components[name] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}
