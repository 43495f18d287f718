// Package domain defines the key custody domain models.
//
// Every product owns an asymmetric signing key pair. The private half is stored only
// as an AEAD envelope whose key is derived from the deployment secret, a 32-byte
// symmetric secret read once at startup and held for the process lifetime.
package domain

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/allisson/license-manager/internal/config"
)

// DeploymentSecretSize is the required length of the decoded deployment secret.
const DeploymentSecretSize = 32

const redacted = "[REDACTED]"

// KMSKeeper decrypts data with a key held by a Key Management Service.
// *secrets.Keeper from gocloud.dev satisfies this interface.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}

// DeploymentSecret is the process-wide secret protecting private keys at rest.
//
// It is immutable after construction and safe for concurrent reads. Its String and
// LogValue methods never reveal the key, so accidentally logging or formatting a
// secret prints a placeholder.
type DeploymentSecret struct {
	key []byte
}

// NewDeploymentSecret copies key into a new DeploymentSecret.
// Returns ErrInvalidSecret unless key is exactly 32 bytes.
func NewDeploymentSecret(key []byte) (*DeploymentSecret, error) {
	if len(key) != DeploymentSecretSize {
		return nil, fmt.Errorf(
			"%w: must be %d bytes, got %d",
			ErrInvalidSecret,
			DeploymentSecretSize,
			len(key),
		)
	}
	k := make([]byte, DeploymentSecretSize)
	copy(k, key)
	return &DeploymentSecret{key: k}, nil
}

// Validate reports whether the secret can be used for key custody.
// A nil secret yields ErrSecretNotConfigured, a wiped or truncated one ErrInvalidSecret.
func (s *DeploymentSecret) Validate() error {
	if s == nil {
		return ErrSecretNotConfigured
	}
	if len(s.key) != DeploymentSecretSize {
		return ErrInvalidSecret
	}
	return nil
}

// Key returns the raw secret. Callers must not modify or retain the slice.
func (s *DeploymentSecret) Key() []byte {
	return s.key
}

// Close zeroes the secret. The secret is unusable afterwards.
func (s *DeploymentSecret) Close() {
	if s == nil {
		return
	}
	Zero(s.key)
	s.key = nil
}

// String implements fmt.Stringer without exposing the key.
func (s *DeploymentSecret) String() string {
	return redacted
}

// LogValue implements slog.LogValuer without exposing the key.
func (s *DeploymentSecret) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// LoadDeploymentSecret reads LICENSE_SIGNING_SECRET from configuration.
//
// Without a KMS provider the value is the base64-encoded 32-byte secret. With
// KMS_PROVIDER set, the value is the base64-encoded KMS ciphertext of the secret and
// is decrypted through the keeper opened for KMS_KEY_URI.
//
// Every failure wraps errors.ErrConfiguration and must abort startup.
func LoadDeploymentSecret(
	ctx context.Context,
	cfg *config.Config,
	kmsService KMSService,
	logger *slog.Logger,
) (*DeploymentSecret, error) {
	if cfg.LicenseSigningSecret == "" {
		return nil, ErrSecretNotConfigured
	}

	decoded, err := base64.StdEncoding.DecodeString(cfg.LicenseSigningSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64", ErrInvalidSecret)
	}
	defer Zero(decoded)

	if cfg.KMSProvider == "" {
		secret, err := NewDeploymentSecret(decoded)
		if err != nil {
			return nil, err
		}
		logger.Info("license signing secret loaded", slog.String("source", "plaintext"))
		return secret, nil
	}

	if cfg.KMSKeyURI == "" {
		return nil, fmt.Errorf("%w: KMS_KEY_URI is required when KMS_PROVIDER is set", ErrInvalidSecret)
	}

	keeper, err := kmsService.OpenKeeper(ctx, cfg.KMSKeyURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSecret, err)
	}
	defer func() {
		if closeErr := keeper.Close(); closeErr != nil {
			logger.Warn("failed to close KMS keeper", slog.Any("error", closeErr))
		}
	}()

	plaintext, err := keeper.Decrypt(ctx, decoded)
	if err != nil {
		return nil, fmt.Errorf("%w: KMS decryption failed", ErrInvalidSecret)
	}
	defer Zero(plaintext)

	secret, err := NewDeploymentSecret(plaintext)
	if err != nil {
		return nil, err
	}

	logger.Info("license signing secret loaded",
		slog.String("source", "kms"),
		slog.String("kms_provider", cfg.KMSProvider),
	)
	return secret, nil
}
