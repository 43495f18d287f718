package service

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
	"math/big"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
)

var errHandleDestroyed = errors.New("private key handle destroyed")

// PrivateKeyHandle holds a decrypted private key for the duration of one signing call.
//
// A handle is not safe for concurrent use. Destroy zeroes the key material and must
// run on every path once signing is done; it is idempotent.
type PrivateKeyHandle struct {
	alg    cryptoDomain.KeyAlgorithm
	signer crypto.Signer
}

func newPrivateKeyHandle(alg cryptoDomain.KeyAlgorithm, signer crypto.Signer) *PrivateKeyHandle {
	return &PrivateKeyHandle{alg: alg, signer: signer}
}

// Algorithm returns the key algorithm.
func (h *PrivateKeyHandle) Algorithm() cryptoDomain.KeyAlgorithm {
	return h.alg
}

// Signer returns the underlying signer, or nil after Destroy.
func (h *PrivateKeyHandle) Signer() crypto.Signer {
	return h.signer
}

// Public returns the public half of the key, or nil after Destroy.
func (h *PrivateKeyHandle) Public() crypto.PublicKey {
	if h.signer == nil {
		return nil
	}
	return h.signer.Public()
}

// Sign signs message with the scheme implied by the key algorithm: RSASSA-PSS or
// ECDSA over a SHA-256 digest, or pure Ed25519 over the message itself.
func (h *PrivateKeyHandle) Sign(message []byte) ([]byte, error) {
	if h.signer == nil {
		return nil, errHandleDestroyed
	}

	switch key := h.signer.(type) {
	case *rsa.PrivateKey:
		digest := sha256.Sum256(message)
		return rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthEqualsHash,
		})
	case *ecdsa.PrivateKey:
		digest := sha256.Sum256(message)
		return ecdsa.SignASN1(rand.Reader, key, digest[:])
	case ed25519.PrivateKey:
		return ed25519.Sign(key, message), nil
	default:
		return nil, cryptoDomain.ErrUnsupportedKeyAlgorithm
	}
}

// Destroy zeroes the private scalar material and releases the signer.
func (h *PrivateKeyHandle) Destroy() {
	if h == nil || h.signer == nil {
		return
	}

	switch key := h.signer.(type) {
	case *rsa.PrivateKey:
		zeroInt(key.D)
		for _, p := range key.Primes {
			zeroInt(p)
		}
		zeroInt(key.Precomputed.Dp)
		zeroInt(key.Precomputed.Dq)
		zeroInt(key.Precomputed.Qinv)
	case *ecdsa.PrivateKey:
		zeroInt(key.D)
	case ed25519.PrivateKey:
		cryptoDomain.Zero(key)
	}

	h.signer = nil
}

func zeroInt(n *big.Int) {
	if n == nil {
		return
	}
	clear(n.Bits())
	n.SetInt64(0)
}
