package app

import (
	"fmt"
	"log/slog"

	"github.com/allisson/license-manager/internal/config"
	"github.com/allisson/license-manager/internal/issuance/cache"
	issuanceDomain "github.com/allisson/license-manager/internal/issuance/domain"
	issuanceHTTP "github.com/allisson/license-manager/internal/issuance/http"
	issuanceService "github.com/allisson/license-manager/internal/issuance/service"
	issuanceUseCase "github.com/allisson/license-manager/internal/issuance/usecase"
	"github.com/allisson/license-manager/internal/metrics"
)

// IssuanceCache returns the TTL backend selected by ISSUANCE_TOKEN_STORE.
func (c *Container) IssuanceCache() (issuanceService.Cache, error) {
	var err error
	c.issuanceCacheInit.Do(func() {
		c.issuanceCache, err = c.initIssuanceCache()
		if err != nil {
			c.initErrors["issuanceCache"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["issuanceCache"]; exists {
		return nil, storedErr
	}
	return c.issuanceCache, nil
}

// TokenStore returns the issuance token store.
func (c *Container) TokenStore() (*issuanceService.TokenStore, error) {
	var err error
	c.tokenStoreInit.Do(func() {
		c.tokenStore, err = c.initTokenStore()
		if err != nil {
			c.initErrors["tokenStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["tokenStore"]; exists {
		return nil, storedErr
	}
	return c.tokenStore, nil
}

// IssuanceUseCase returns the issuance use case.
func (c *Container) IssuanceUseCase() (issuanceUseCase.IssuanceUseCase, error) {
	var err error
	c.issuanceUseCaseInit.Do(func() {
		c.issuanceUseCase, err = c.initIssuanceUseCase()
		if err != nil {
			c.initErrors["issuanceUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["issuanceUseCase"]; exists {
		return nil, storedErr
	}
	return c.issuanceUseCase, nil
}

// SigningUseCase returns the use case for offline license signing. Unlike
// IssuanceUseCase it never initializes the token store.
func (c *Container) SigningUseCase() (issuanceUseCase.SigningUseCase, error) {
	var err error
	c.signingUseCaseInit.Do(func() {
		c.signingUseCase, err = c.initSigningUseCase()
		if err != nil {
			c.initErrors["signingUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signingUseCase"]; exists {
		return nil, storedErr
	}
	return c.signingUseCase, nil
}

// IssuanceHandler returns the HTTP handler for license issuance and download.
func (c *Container) IssuanceHandler() (*issuanceHTTP.IssuanceHandler, error) {
	var err error
	c.issuanceHandlerInit.Do(func() {
		c.issuanceHandler, err = c.initIssuanceHandler()
		if err != nil {
			c.initErrors["issuanceHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["issuanceHandler"]; exists {
		return nil, storedErr
	}
	return c.issuanceHandler, nil
}

// initIssuanceCache creates the memory or Redis backend. The memory backend starts
// its sweeper and, with metrics enabled, publishes the pending tokens gauge.
func (c *Container) initIssuanceCache() (issuanceService.Cache, error) {
	logger := c.Logger()

	switch c.config.IssuanceTokenStore {
	case config.IssuanceStoreMemory:
		memoryCache := cache.NewMemoryCache(logger)
		memoryCache.Start(c.config.IssuanceSweepInterval)
		c.memoryCache = memoryCache

		provider, err := c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for issuance cache: %w", err)
		}
		if provider != nil {
			c.pendingGauge, err = metrics.RegisterPendingTokensGauge(
				provider.MeterProvider(),
				c.config.MetricsNamespace,
				memoryCache.Len,
			)
			if err != nil {
				return nil, err
			}
		}
		return memoryCache, nil
	case config.IssuanceStoreRedis:
		client, err := cache.ConnectRedis(c.ctx, c.config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis for issuance cache: %w", err)
		}
		c.redisClient = client
		logger.Info("issuance tokens stored in redis")
		return cache.NewRedisCache(client), nil
	default:
		return nil, fmt.Errorf("unsupported issuance token store: %s", c.config.IssuanceTokenStore)
	}
}

// initTokenStore creates the token store over the configured backend.
func (c *Container) initTokenStore() (*issuanceService.TokenStore, error) {
	issuanceCache, err := c.IssuanceCache()
	if err != nil {
		return nil, fmt.Errorf("failed to get issuance cache for token store: %w", err)
	}

	policy := issuanceDomain.TokenPolicyMultiUse
	if c.config.IssuanceTokenSingleUse {
		policy = issuanceDomain.TokenPolicySingleUse
	}

	c.Logger().Info("issuance token store ready",
		slog.String("backend", c.config.IssuanceTokenStore),
		slog.String("policy", string(policy)),
		slog.Duration("ttl", c.config.IssuanceTokenTTL),
	)

	return issuanceService.NewTokenStore(
		issuanceCache,
		issuanceService.NewTokenGenerator(),
		c.config.IssuanceTokenTTL,
		policy,
	), nil
}

// initIssuanceUseCase creates the issuance use case with all its dependencies.
func (c *Container) initIssuanceUseCase() (issuanceUseCase.IssuanceUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for issuance use case: %w", err)
	}

	licenseRepo, err := c.LicenseRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get license repository for issuance use case: %w", err)
	}

	customerRepo, err := c.CustomerRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get customer repository for issuance use case: %w", err)
	}

	productRepo, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for issuance use case: %w", err)
	}

	signer, err := c.Signer()
	if err != nil {
		return nil, fmt.Errorf("failed to get signer for issuance use case: %w", err)
	}

	tokenStore, err := c.TokenStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get token store for issuance use case: %w", err)
	}

	secret, err := c.DeploymentSecret()
	if err != nil {
		return nil, err
	}

	baseUseCase := issuanceUseCase.NewIssuanceUseCase(
		txManager,
		licenseRepo,
		customerRepo,
		productRepo,
		c.DocumentBuilder(),
		signer,
		tokenStore,
		secret,
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for issuance use case: %w", err)
		}
		return issuanceUseCase.NewIssuanceUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initSigningUseCase creates the signing use case over the repositories and signer.
func (c *Container) initSigningUseCase() (issuanceUseCase.SigningUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for signing use case: %w", err)
	}

	licenseRepo, err := c.LicenseRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get license repository for signing use case: %w", err)
	}

	customerRepo, err := c.CustomerRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get customer repository for signing use case: %w", err)
	}

	productRepo, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for signing use case: %w", err)
	}

	signer, err := c.Signer()
	if err != nil {
		return nil, fmt.Errorf("failed to get signer for signing use case: %w", err)
	}

	secret, err := c.DeploymentSecret()
	if err != nil {
		return nil, err
	}

	baseUseCase := issuanceUseCase.NewSigningUseCase(
		txManager,
		licenseRepo,
		customerRepo,
		productRepo,
		c.DocumentBuilder(),
		signer,
		secret,
		c.Logger(),
	)

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for signing use case: %w", err)
		}
		return issuanceUseCase.NewSigningUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initIssuanceHandler creates the issuance HTTP handler with all its dependencies.
func (c *Container) initIssuanceHandler() (*issuanceHTTP.IssuanceHandler, error) {
	useCase, err := c.IssuanceUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get issuance use case for issuance handler: %w", err)
	}
	return issuanceHTTP.NewIssuanceHandler(useCase, c.Logger()), nil
}
