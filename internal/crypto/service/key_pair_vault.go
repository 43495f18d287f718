package service

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
)

const (
	envelopeKeyInfo = "license-keypair-encryption-v1"
	envelopeKeySize = 32
	saltSize        = 16
)

// KeyPairVaultService generates product key pairs and seals their private halves
// under a key derived from the deployment secret.
//
// Each envelope gets its own random salt, so the derived key is unique per key pair.
// The vault performs no I/O and never reads configuration; the secret is always
// passed in by the caller.
type KeyPairVaultService struct {
	aeadManager AEADManager
	sealWith    cryptoDomain.Algorithm
}

// NewKeyPairVault creates a vault sealing new private keys with sealWith.
// Existing envelopes are opened with the algorithm recorded in their header.
func NewKeyPairVault(aeadManager AEADManager, sealWith cryptoDomain.Algorithm) *KeyPairVaultService {
	return &KeyPairVaultService{aeadManager: aeadManager, sealWith: sealWith}
}

// Generate creates a new key pair of type alg. The secret is validated before any
// key material is generated. The plaintext private key never leaves this call.
func (v *KeyPairVaultService) Generate(
	secret *cryptoDomain.DeploymentSecret,
	alg cryptoDomain.KeyAlgorithm,
) (*cryptoDomain.KeyPair, error) {
	if err := secret.Validate(); err != nil {
		return nil, err
	}
	if _, err := alg.SignatureAlgorithm(); err != nil {
		return nil, err
	}

	signer, err := generateSigner(alg)
	if err != nil {
		return nil, err
	}
	handle := newPrivateKeyHandle(alg, signer)
	defer handle.Destroy()

	publicKeyPEM, err := EncodePublicKeyPEM(signer.Public())
	if err != nil {
		return nil, err
	}

	der, err := x509.MarshalPKCS8PrivateKey(signer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal private key: %w", err)
	}
	defer cryptoDomain.Zero(der)

	envelope, err := v.seal(der, secret)
	if err != nil {
		return nil, err
	}

	return &cryptoDomain.KeyPair{
		Algorithm:           alg,
		PublicKey:           publicKeyPEM,
		EncryptedPrivateKey: envelope.String(),
	}, nil
}

// Decrypt opens an envelope produced by Generate.
//
// A wrong secret, an altered envelope, or plaintext that is not a supported private
// key all yield cryptoDomain.ErrDecryptionFailed. The cause is not distinguished.
func (v *KeyPairVaultService) Decrypt(
	encrypted string,
	secret *cryptoDomain.DeploymentSecret,
) (*PrivateKeyHandle, error) {
	if err := secret.Validate(); err != nil {
		return nil, err
	}

	envelope, err := cryptoDomain.ParsePrivateKeyEnvelope(encrypted)
	if err != nil {
		return nil, err
	}

	key, err := deriveEnvelopeKey(secret, envelope.Salt)
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	cipher, err := v.aeadManager.CreateCipher(key, envelope.Algorithm)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	der, err := cipher.Decrypt(envelope.Ciphertext, envelope.Nonce, []byte(envelope.Header()))
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	defer cryptoDomain.Zero(der)

	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	signer, ok := parsed.(crypto.Signer)
	if !ok {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	alg, err := keyAlgorithmOf(signer)
	if err != nil {
		newPrivateKeyHandle("", signer).Destroy()
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return newPrivateKeyHandle(alg, signer), nil
}

func (v *KeyPairVaultService) seal(
	der []byte,
	secret *cryptoDomain.DeploymentSecret,
) (cryptoDomain.PrivateKeyEnvelope, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return cryptoDomain.PrivateKeyEnvelope{}, fmt.Errorf("failed to generate salt: %w", err)
	}

	key, err := deriveEnvelopeKey(secret, salt)
	if err != nil {
		return cryptoDomain.PrivateKeyEnvelope{}, err
	}
	defer cryptoDomain.Zero(key)

	cipher, err := v.aeadManager.CreateCipher(key, v.sealWith)
	if err != nil {
		return cryptoDomain.PrivateKeyEnvelope{}, err
	}

	envelope := cryptoDomain.PrivateKeyEnvelope{
		Version:   cryptoDomain.EnvelopeVersion,
		Algorithm: v.sealWith,
		Salt:      salt,
	}

	ciphertext, nonce, err := cipher.Encrypt(der, []byte(envelope.Header()))
	if err != nil {
		return cryptoDomain.PrivateKeyEnvelope{}, fmt.Errorf("failed to encrypt private key: %w", err)
	}
	envelope.Nonce = nonce
	envelope.Ciphertext = ciphertext

	return envelope, nil
}

func deriveEnvelopeKey(secret *cryptoDomain.DeploymentSecret, salt []byte) ([]byte, error) {
	reader := hkdf.New(sha256.New, secret.Key(), salt, []byte(envelopeKeyInfo))

	key := make([]byte, envelopeKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive envelope key: %w", err)
	}
	return key, nil
}

func generateSigner(alg cryptoDomain.KeyAlgorithm) (crypto.Signer, error) {
	switch alg {
	case cryptoDomain.RSA2048, cryptoDomain.RSA3072, cryptoDomain.RSA4096:
		key, err := rsa.GenerateKey(rand.Reader, alg.RSABits())
		if err != nil {
			return nil, fmt.Errorf("failed to generate RSA key: %w", err)
		}
		return key, nil
	case cryptoDomain.ECDSAP256:
		key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to generate ECDSA key: %w", err)
		}
		return key, nil
	case cryptoDomain.Ed25519:
		_, key, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, fmt.Errorf("failed to generate Ed25519 key: %w", err)
		}
		return key, nil
	default:
		return nil, cryptoDomain.ErrUnsupportedKeyAlgorithm
	}
}

func keyAlgorithmOf(signer crypto.Signer) (cryptoDomain.KeyAlgorithm, error) {
	switch key := signer.(type) {
	case *rsa.PrivateKey:
		switch key.N.BitLen() {
		case 2048:
			return cryptoDomain.RSA2048, nil
		case 3072:
			return cryptoDomain.RSA3072, nil
		case 4096:
			return cryptoDomain.RSA4096, nil
		}
	case *ecdsa.PrivateKey:
		if key.Curve == elliptic.P256() {
			return cryptoDomain.ECDSAP256, nil
		}
	case ed25519.PrivateKey:
		return cryptoDomain.Ed25519, nil
	}
	return "", cryptoDomain.ErrUnsupportedKeyAlgorithm
}
