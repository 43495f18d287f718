package service

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"errors"
	"fmt"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
)

const publicKeyPEMType = "PUBLIC KEY"

// ErrInvalidPublicKey indicates a public key PEM block could not be parsed.
var ErrInvalidPublicKey = errors.New("invalid public key")

// EncodePublicKeyPEM encodes pub as a PKIX "PUBLIC KEY" PEM block.
func EncodePublicKeyPEM(pub crypto.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: publicKeyPEMType, Bytes: der})), nil
}

// ParsePublicKeyPEM parses a PKIX "PUBLIC KEY" PEM block.
func ParsePublicKeyPEM(publicKeyPEM string) (crypto.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil || block.Type != publicKeyPEMType {
		return nil, ErrInvalidPublicKey
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return pub, nil
}

// KeyID returns the first 16 bytes, hex encoded, of the SHA-256 digest of the PKIX
// encoding of pub. Verifiers use it to select the right product key.
func KeyID(pub crypto.PublicKey) (string, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}
	sum := sha256.Sum256(der)
	return hex.EncodeToString(sum[:16]), nil
}

// VerifySignature checks signature over message with pub using the named signature
// algorithm. It returns false for any mismatch between algorithm and key type.
func VerifySignature(pub crypto.PublicKey, algorithm string, message, signature []byte) bool {
	switch algorithm {
	case cryptoDomain.SignatureRSAPSSSHA256:
		key, ok := pub.(*rsa.PublicKey)
		if !ok {
			return false
		}
		digest := sha256.Sum256(message)
		err := rsa.VerifyPSS(key, crypto.SHA256, digest[:], signature, &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthEqualsHash,
		})
		return err == nil
	case cryptoDomain.SignatureECDSAP256SHA256:
		key, ok := pub.(*ecdsa.PublicKey)
		if !ok || key.Curve != elliptic.P256() {
			return false
		}
		digest := sha256.Sum256(message)
		return ecdsa.VerifyASN1(key, digest[:], signature)
	case cryptoDomain.SignatureEd25519:
		key, ok := pub.(ed25519.PublicKey)
		if !ok {
			return false
		}
		return ed25519.Verify(key, message, signature)
	default:
		return false
	}
}
