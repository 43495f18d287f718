package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"gocloud.dev/secrets"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"

	// Register all KMS provider drivers
	_ "gocloud.dev/secrets/awskms"
	_ "gocloud.dev/secrets/azurekeyvault"
	_ "gocloud.dev/secrets/gcpkms"
	_ "gocloud.dev/secrets/hashivault"
	_ "gocloud.dev/secrets/localsecrets"
)

// KMSService opens gocloud.dev keepers and wraps deployment secrets for storage in
// LICENSE_SIGNING_SECRET.
type KMSService struct{}

// NewKMSService creates a new KMS service instance.
func NewKMSService() *KMSService {
	return &KMSService{}
}

// OpenKeeper opens a keeper for keyURI.
// Supports: gcpkms://, awskms://, azurekeyvault://, hashivault://, base64key://
func (k *KMSService) OpenKeeper(ctx context.Context, keyURI string) (cryptoDomain.KMSKeeper, error) {
	keeper, err := secrets.OpenKeeper(ctx, keyURI)
	if err != nil {
		return nil, fmt.Errorf("failed to open KMS keeper: %w", err)
	}
	return keeper, nil
}

// WrapSecret encrypts a raw deployment secret with the KMS key and returns the
// base64 ciphertext accepted by cryptoDomain.LoadDeploymentSecret.
func (k *KMSService) WrapSecret(ctx context.Context, keyURI string, secret []byte) (string, error) {
	keeper, err := k.OpenKeeper(ctx, keyURI)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = keeper.Close()
	}()

	ciphertext, err := keeper.Encrypt(ctx, secret)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret with KMS: %w", err)
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}
