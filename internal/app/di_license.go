package app

import (
	"fmt"

	issuanceUseCase "github.com/allisson/license-manager/internal/issuance/usecase"
	licenseRepository "github.com/allisson/license-manager/internal/license/repository"
	licenseService "github.com/allisson/license-manager/internal/license/service"
	productUseCase "github.com/allisson/license-manager/internal/product/usecase"
)

// CustomerRepository returns the customer repository based on database driver.
func (c *Container) CustomerRepository() (issuanceUseCase.CustomerRepository, error) {
	var err error
	c.customerRepoInit.Do(func() {
		c.customerRepo, err = c.initCustomerRepository()
		if err != nil {
			c.initErrors["customerRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["customerRepo"]; exists {
		return nil, storedErr
	}
	return c.customerRepo, nil
}

// ProductRepository returns the product repository based on database driver.
func (c *Container) ProductRepository() (productUseCase.ProductRepository, error) {
	var err error
	c.productRepoInit.Do(func() {
		c.productRepo, err = c.initProductRepository()
		if err != nil {
			c.initErrors["productRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["productRepo"]; exists {
		return nil, storedErr
	}
	return c.productRepo, nil
}

// LicenseRepository returns the license repository based on database driver.
func (c *Container) LicenseRepository() (issuanceUseCase.LicenseRepository, error) {
	var err error
	c.licenseRepoInit.Do(func() {
		c.licenseRepo, err = c.initLicenseRepository()
		if err != nil {
			c.initErrors["licenseRepo"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["licenseRepo"]; exists {
		return nil, storedErr
	}
	return c.licenseRepo, nil
}

// DocumentBuilder returns the license document builder.
func (c *Container) DocumentBuilder() *licenseService.DocumentBuilder {
	c.documentBuilderInit.Do(func() {
		c.documentBuilder = licenseService.NewDocumentBuilder()
	})
	return c.documentBuilder
}

// Signer returns the license signer.
func (c *Container) Signer() (*licenseService.Signer, error) {
	var err error
	c.signerInit.Do(func() {
		c.signer, err = c.initSigner()
		if err != nil {
			c.initErrors["signer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["signer"]; exists {
		return nil, storedErr
	}
	return c.signer, nil
}

// initCustomerRepository creates the customer repository based on the database driver.
func (c *Container) initCustomerRepository() (issuanceUseCase.CustomerRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for customer repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return licenseRepository.NewPostgreSQLCustomerRepository(db), nil
	case "mysql":
		return licenseRepository.NewMySQLCustomerRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initProductRepository creates the product repository based on the database driver.
func (c *Container) initProductRepository() (productUseCase.ProductRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for product repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return licenseRepository.NewPostgreSQLProductRepository(db), nil
	case "mysql":
		return licenseRepository.NewMySQLProductRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initLicenseRepository creates the license repository based on the database driver.
func (c *Container) initLicenseRepository() (issuanceUseCase.LicenseRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for license repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return licenseRepository.NewPostgreSQLLicenseRepository(db), nil
	case "mysql":
		return licenseRepository.NewMySQLLicenseRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSigner creates the signer over the key pair vault.
func (c *Container) initSigner() (*licenseService.Signer, error) {
	vault, err := c.KeyPairVault()
	if err != nil {
		return nil, fmt.Errorf("failed to get key pair vault for signer: %w", err)
	}
	return licenseService.NewSigner(vault), nil
}
