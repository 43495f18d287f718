// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/metric"

	"github.com/allisson/license-manager/internal/config"
	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	cryptoService "github.com/allisson/license-manager/internal/crypto/service"
	"github.com/allisson/license-manager/internal/database"
	"github.com/allisson/license-manager/internal/http"
	"github.com/allisson/license-manager/internal/issuance/cache"
	issuanceHTTP "github.com/allisson/license-manager/internal/issuance/http"
	issuanceService "github.com/allisson/license-manager/internal/issuance/service"
	issuanceUseCase "github.com/allisson/license-manager/internal/issuance/usecase"
	licenseService "github.com/allisson/license-manager/internal/license/service"
	"github.com/allisson/license-manager/internal/metrics"
	productHTTP "github.com/allisson/license-manager/internal/product/http"
	productUseCase "github.com/allisson/license-manager/internal/product/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Background work started by components (sweeper, rate limiter cleanup) stops
	// when this context is cancelled by Shutdown.
	ctx    context.Context
	cancel context.CancelFunc

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	redisClient     *redis.Client
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics
	pendingGauge    metric.Registration

	// Managers
	txManager database.TxManager

	// Key custody
	kmsService       *cryptoService.KMSService
	deploymentSecret *cryptoDomain.DeploymentSecret
	aeadManager      cryptoService.AEADManager
	keyPairVault     cryptoService.KeyPairVault

	// Repositories
	customerRepo issuanceUseCase.CustomerRepository
	productRepo  productUseCase.ProductRepository
	licenseRepo  issuanceUseCase.LicenseRepository

	// Services
	documentBuilder *licenseService.DocumentBuilder
	signer          *licenseService.Signer
	memoryCache     *cache.MemoryCache
	issuanceCache   issuanceService.Cache
	tokenStore      *issuanceService.TokenStore

	// Use Cases
	signingUseCase  issuanceUseCase.SigningUseCase
	issuanceUseCase issuanceUseCase.IssuanceUseCase
	productUseCase  productUseCase.ProductUseCase

	// HTTP Handlers
	issuanceHandler *issuanceHTTP.IssuanceHandler
	productHandler  *productHTTP.ProductHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                   sync.Mutex
	loggerInit           sync.Once
	dbInit               sync.Once
	txManagerInit        sync.Once
	metricsProviderInit  sync.Once
	businessMetricsInit  sync.Once
	kmsServiceInit       sync.Once
	deploymentSecretInit sync.Once
	aeadManagerInit      sync.Once
	keyPairVaultInit     sync.Once
	customerRepoInit     sync.Once
	productRepoInit      sync.Once
	licenseRepoInit      sync.Once
	documentBuilderInit  sync.Once
	signerInit           sync.Once
	issuanceCacheInit    sync.Once
	tokenStoreInit       sync.Once
	signingUseCaseInit   sync.Once
	issuanceUseCaseInit  sync.Once
	productUseCaseInit   sync.Once
	issuanceHandlerInit  sync.Once
	productHandlerInit   sync.Once
	httpServerInit       sync.Once
	metricsServerInit    sync.Once
	initErrors           map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		ctx:        ctx,
		cancel:     cancel,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	var err error
	c.txManagerInit.Do(func() {
		c.txManager, err = c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the OpenTelemetry provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
// It is a no-op recorder when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancel()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.pendingGauge != nil {
		if err := c.pendingGauge.Unregister(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("pending tokens gauge: %w", err))
		}
	}

	if c.memoryCache != nil {
		if err := c.memoryCache.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("memory cache close: %w", err))
		}
	}

	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("redis close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.deploymentSecret != nil {
		c.deploymentSecret.Close()
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(shutdownErrors...))
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(c.ctx, database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initMetricsProvider creates the Prometheus-backed provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	issuanceHandler, err := c.IssuanceHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get issuance handler for http server: %w", err)
	}

	productHandler, err := c.ProductHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get product handler for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	if c.redisClient != nil {
		client := c.redisClient
		server.AddReadinessCheck("redis", func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}
	server.SetupRouter(c.ctx, c.config, issuanceHandler, productHandler, metricsProvider)

	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
