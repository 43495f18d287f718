package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	productHTTP "github.com/allisson/license-manager/internal/product/http"
	productUseCase "github.com/allisson/license-manager/internal/product/usecase"
)

// ProductUseCase returns the product use case.
func (c *Container) ProductUseCase() (productUseCase.ProductUseCase, error) {
	var err error
	c.productUseCaseInit.Do(func() {
		c.productUseCase, err = c.initProductUseCase()
		if err != nil {
			c.initErrors["productUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productUseCase"]; exists {
		return nil, storedErr
	}
	return c.productUseCase, nil
}

// ProductHandler returns the HTTP handler for product operations.
func (c *Container) ProductHandler() (*productHTTP.ProductHandler, error) {
	var err error
	c.productHandlerInit.Do(func() {
		c.productHandler, err = c.initProductHandler()
		if err != nil {
			c.initErrors["productHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productHandler"]; exists {
		return nil, storedErr
	}
	return c.productHandler, nil
}

// initProductUseCase creates the product use case with all its dependencies.
func (c *Container) initProductUseCase() (productUseCase.ProductUseCase, error) {
	defaultAlgorithm, err := cryptoDomain.ParseKeyAlgorithm(c.config.KeyAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid KEY_ALGORITHM: %w", err)
	}

	productRepo, err := c.ProductRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get product repository for product use case: %w", err)
	}

	vault, err := c.KeyPairVault()
	if err != nil {
		return nil, fmt.Errorf("failed to get key pair vault for product use case: %w", err)
	}

	secret, err := c.DeploymentSecret()
	if err != nil {
		return nil, err
	}

	baseUseCase := productUseCase.NewProductUseCase(productRepo, vault, secret, defaultAlgorithm, c.Logger())

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for product use case: %w", err)
		}
		return productUseCase.NewProductUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// initProductHandler creates the product HTTP handler with all its dependencies.
func (c *Container) initProductHandler() (*productHTTP.ProductHandler, error) {
	useCase, err := c.ProductUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get product use case for product handler: %w", err)
	}
	return productHTTP.NewProductHandler(useCase, c.Logger()), nil
}
