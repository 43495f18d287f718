package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EnvelopeVersion is the current private key envelope format version.
const EnvelopeVersion = "v1"

// KeyPair is a product's signing credential.
//
// PublicKey is a PEM "PUBLIC KEY" block (PKIX) safe to publish. EncryptedPrivateKey is
// an opaque envelope string produced by the key pair vault; the plaintext private key
// is never persisted or transmitted.
type KeyPair struct {
	Algorithm           KeyAlgorithm
	PublicKey           string
	EncryptedPrivateKey string
}

// PrivateKeyEnvelope is the parsed form of KeyPair.EncryptedPrivateKey.
//
// The text encoding is "version:algorithm:salt:nonce:ciphertext" with standard base64
// for the binary fields. The ciphertext holds a PKCS#8 DER private key sealed with a
// key derived from the deployment secret and Salt.
type PrivateKeyEnvelope struct {
	Version    string
	Algorithm  Algorithm
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
}

// Header returns the "version:algorithm" prefix, used as associated data so that
// the header cannot be altered without failing authentication.
func (e PrivateKeyEnvelope) Header() string {
	return e.Version + ":" + string(e.Algorithm)
}

// String serializes the envelope to its text form.
func (e PrivateKeyEnvelope) String() string {
	return strings.Join([]string{
		e.Version,
		string(e.Algorithm),
		base64.StdEncoding.EncodeToString(e.Salt),
		base64.StdEncoding.EncodeToString(e.Nonce),
		base64.StdEncoding.EncodeToString(e.Ciphertext),
	}, ":")
}

// ParsePrivateKeyEnvelope parses the text form produced by PrivateKeyEnvelope.String.
// Any malformed input yields ErrDecryptionFailed.
func ParsePrivateKeyEnvelope(content string) (PrivateKeyEnvelope, error) {
	parts := strings.Split(content, ":")
	if len(parts) != 5 {
		return PrivateKeyEnvelope{}, fmt.Errorf(
			"%w: expected 5 envelope parts, got %d",
			ErrDecryptionFailed,
			len(parts),
		)
	}
	if parts[0] != EnvelopeVersion {
		return PrivateKeyEnvelope{}, fmt.Errorf("%w: unknown envelope version", ErrDecryptionFailed)
	}

	alg, err := ParseAlgorithm(parts[1])
	if err != nil {
		return PrivateKeyEnvelope{}, fmt.Errorf("%w: unknown envelope algorithm", ErrDecryptionFailed)
	}

	decoded := make([][]byte, 0, 3)
	for _, p := range parts[2:] {
		b, err := base64.StdEncoding.DecodeString(p)
		if err != nil || len(b) == 0 {
			return PrivateKeyEnvelope{}, fmt.Errorf("%w: invalid envelope encoding", ErrDecryptionFailed)
		}
		decoded = append(decoded, b)
	}

	return PrivateKeyEnvelope{
		Version:    parts[0],
		Algorithm:  alg,
		Salt:       decoded[0],
		Nonce:      decoded[1],
		Ciphertext: decoded[2],
	}, nil
}
