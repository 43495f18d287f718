// Package service provides the cryptographic services behind product key custody:
// AEAD ciphers, KMS access, and the vault that generates and unseals signing keys.
package service

import (
	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// KeyPairVault generates product key pairs and recovers their private halves.
type KeyPairVault interface {
	// Generate creates a key pair whose private key is sealed under secret.
	Generate(
		secret *cryptoDomain.DeploymentSecret,
		alg cryptoDomain.KeyAlgorithm,
	) (*cryptoDomain.KeyPair, error)

	// Decrypt unseals an encrypted private key. The caller must Destroy the handle.
	Decrypt(encrypted string, secret *cryptoDomain.DeploymentSecret) (*PrivateKeyHandle, error)
}
