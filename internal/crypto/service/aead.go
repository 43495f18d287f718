package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
)

// aeadCipher adapts a cipher.AEAD to the AEAD interface with random nonces.
//
// Instances are stateless apart from the key schedule and safe for concurrent use.
// Each key in this package seals exactly one private key, so random 96-bit nonces
// never approach their collision bound.
type aeadCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates an AES-256-GCM cipher. The key must be 32 bytes.
func NewAESGCM(key []byte) (AEAD, error) {
	if len(key) != 32 {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &aeadCipher{aead: aead}, nil
}

// NewChaCha20Poly1305 creates a ChaCha20-Poly1305 cipher. The key must be 32 bytes.
func NewChaCha20Poly1305(key []byte) (AEAD, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	return &aeadCipher{aead: aead}, nil
}

// Encrypt seals plaintext under a fresh random nonce. The authentication tag is
// appended to the returned ciphertext.
func (c *aeadCipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext = c.aead.Seal(nil, nonce, plaintext, aad)
	return ciphertext, nonce, nil
}

// Decrypt opens ciphertext. A wrong key, nonce or aad, or any modification of the
// ciphertext, yields cryptoDomain.ErrDecryptionFailed and no plaintext.
func (c *aeadCipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != c.aead.NonceSize() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := c.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
