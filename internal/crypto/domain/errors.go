package domain

import (
	"github.com/allisson/license-manager/internal/errors"
)

// Cryptographic and key custody error definitions.
//
// Configuration errors are fatal at startup. Decryption and key custody errors are
// terminal for a single issuance request and are never retried. None of them carry
// key material in their messages.
var (
	// ErrUnsupportedAlgorithm indicates the requested AEAD algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrUnsupportedKeyAlgorithm indicates the requested asymmetric key type is not supported.
	ErrUnsupportedKeyAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported key algorithm")

	// ErrInvalidKeySize indicates a symmetric key is not exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrSecretNotConfigured indicates the deployment has no license signing secret.
	ErrSecretNotConfigured = errors.Wrap(errors.ErrConfiguration, "license signing secret is not configured")

	// ErrInvalidSecret indicates the configured license signing secret is malformed.
	ErrInvalidSecret = errors.Wrap(errors.ErrConfiguration, "license signing secret is invalid")

	// ErrDecryptionFailed indicates an encrypted private key could not be recovered.
	//
	// This covers a wrong deployment secret, a tampered or truncated envelope, and
	// plaintext that does not parse as a private key. The specific cause is not
	// disclosed.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrKeyCustody indicates a product signing key could not be made available for signing.
	ErrKeyCustody = errors.New("key custody failure")
)
