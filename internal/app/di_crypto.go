package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
	cryptoService "github.com/allisson/license-manager/internal/crypto/service"
)

// KMSService returns the KMS service.
func (c *Container) KMSService() *cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = c.initKMSService()
	})
	return c.kmsService
}

// DeploymentSecret returns the license signing secret loaded from configuration.
// A missing or malformed secret is reported as errors.ErrConfiguration.
func (c *Container) DeploymentSecret() (*cryptoDomain.DeploymentSecret, error) {
	var err error
	c.deploymentSecretInit.Do(func() {
		c.deploymentSecret, err = c.initDeploymentSecret()
		if err != nil {
			c.initErrors["deploymentSecret"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["deploymentSecret"]; exists {
		return nil, storedErr
	}
	return c.deploymentSecret, nil
}

// AEADManager returns the AEAD manager service.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = c.initAEADManager()
	})
	return c.aeadManager
}

// KeyPairVault returns the vault that generates and unseals product key pairs.
func (c *Container) KeyPairVault() (cryptoService.KeyPairVault, error) {
	var err error
	c.keyPairVaultInit.Do(func() {
		c.keyPairVault, err = c.initKeyPairVault()
		if err != nil {
			c.initErrors["keyPairVault"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyPairVault"]; exists {
		return nil, storedErr
	}
	return c.keyPairVault, nil
}

// initKMSService creates the KMS service used to unwrap the deployment secret.
func (c *Container) initKMSService() *cryptoService.KMSService {
	return cryptoService.NewKMSService()
}

// initDeploymentSecret loads the deployment secret, unwrapping it through KMS when configured.
func (c *Container) initDeploymentSecret() (*cryptoDomain.DeploymentSecret, error) {
	secret, err := cryptoDomain.LoadDeploymentSecret(c.ctx, c.config, c.KMSService(), c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to load license signing secret: %w", err)
	}
	return secret, nil
}

// initAEADManager creates the AEAD manager service.
func (c *Container) initAEADManager() cryptoService.AEADManager {
	return cryptoService.NewAEADManager()
}

// initKeyPairVault creates the vault sealing new keys with KEY_ENCRYPTION_ALGORITHM.
func (c *Container) initKeyPairVault() (cryptoService.KeyPairVault, error) {
	sealWith, err := cryptoDomain.ParseAlgorithm(c.config.KeyEncryptionAlgorithm)
	if err != nil {
		return nil, fmt.Errorf("invalid KEY_ENCRYPTION_ALGORITHM: %w", err)
	}
	return cryptoService.NewKeyPairVault(c.AEADManager(), sealWith), nil
}
