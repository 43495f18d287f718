package domain

import "fmt"

// Algorithm represents the authenticated cipher used to protect private keys at rest.
//
// Both supported algorithms provide Authenticated Encryption with Associated Data (AEAD),
// so a wrong deployment secret or a tampered envelope is detected on decryption instead
// of yielding garbage key material.
//
// Algorithm selection guidelines:
//   - Use AESGCM on modern CPUs with AES-NI hardware acceleration
//   - Use ChaCha20 on systems without AES-NI
type Algorithm string

const (
	// AESGCM represents AES-256-GCM (12-byte nonce, 16-byte tag).
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305 (12-byte nonce, 16-byte tag).
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// ParseAlgorithm converts a configuration string into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(s) {
	case AESGCM, ChaCha20:
		return Algorithm(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, s)
	}
}

// KeyAlgorithm identifies the asymmetric key type generated for a product.
type KeyAlgorithm string

const (
	// RSA2048 is an RSA key with a 2048-bit modulus, signing with RSASSA-PSS SHA-256.
	RSA2048 KeyAlgorithm = "rsa-2048"
	// RSA3072 is an RSA key with a 3072-bit modulus, signing with RSASSA-PSS SHA-256.
	RSA3072 KeyAlgorithm = "rsa-3072"
	// RSA4096 is an RSA key with a 4096-bit modulus, signing with RSASSA-PSS SHA-256.
	RSA4096 KeyAlgorithm = "rsa-4096"
	// ECDSAP256 is an ECDSA key on NIST P-256, signing SHA-256 digests (ASN.1 signatures).
	ECDSAP256 KeyAlgorithm = "ecdsa-p256"
	// Ed25519 is an Ed25519 key, signing the full message.
	Ed25519 KeyAlgorithm = "ed25519"
)

// Signature algorithm identifiers embedded in signed artifacts.
const (
	SignatureRSAPSSSHA256    = "RSASSA-PSS-SHA256"
	SignatureECDSAP256SHA256 = "ECDSA-P256-SHA256"
	SignatureEd25519         = "Ed25519"
)

// ParseKeyAlgorithm converts a configuration or CLI string into a KeyAlgorithm.
func ParseKeyAlgorithm(s string) (KeyAlgorithm, error) {
	switch KeyAlgorithm(s) {
	case RSA2048, RSA3072, RSA4096, ECDSAP256, Ed25519:
		return KeyAlgorithm(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKeyAlgorithm, s)
	}
}

// RSABits returns the modulus size for RSA algorithms and zero otherwise.
func (a KeyAlgorithm) RSABits() int {
	switch a {
	case RSA2048:
		return 2048
	case RSA3072:
		return 3072
	case RSA4096:
		return 4096
	default:
		return 0
	}
}

// SignatureAlgorithm returns the identifier of the signature scheme used with this key type.
func (a KeyAlgorithm) SignatureAlgorithm() (string, error) {
	switch a {
	case RSA2048, RSA3072, RSA4096:
		return SignatureRSAPSSSHA256, nil
	case ECDSAP256:
		return SignatureECDSAP256SHA256, nil
	case Ed25519:
		return SignatureEd25519, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedKeyAlgorithm, string(a))
	}
}
