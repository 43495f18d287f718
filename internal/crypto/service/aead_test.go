package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/license-manager/internal/crypto/domain"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestAEADCiphers(t *testing.T) {
	constructors := map[string]func([]byte) (AEAD, error){
		"aes-gcm":           NewAESGCM,
		"chacha20-poly1305": NewChaCha20Poly1305,
	}

	for name, newCipher := range constructors {
		t.Run(name, func(t *testing.T) {
			key := randomKey(t)
			aead, err := newCipher(key)
			require.NoError(t, err)

			plaintext := []byte("private key material")
			aad := []byte("v1:" + name)

			t.Run("round trip", func(t *testing.T) {
				ciphertext, nonce, err := aead.Encrypt(plaintext, aad)
				require.NoError(t, err)
				assert.NotEqual(t, plaintext, ciphertext)

				decrypted, err := aead.Decrypt(ciphertext, nonce, aad)
				require.NoError(t, err)
				assert.Equal(t, plaintext, decrypted)
			})

			t.Run("nonces are unique", func(t *testing.T) {
				_, nonce1, err := aead.Encrypt(plaintext, aad)
				require.NoError(t, err)
				_, nonce2, err := aead.Encrypt(plaintext, aad)
				require.NoError(t, err)
				assert.NotEqual(t, nonce1, nonce2)
			})

			t.Run("wrong aad fails", func(t *testing.T) {
				ciphertext, nonce, err := aead.Encrypt(plaintext, aad)
				require.NoError(t, err)

				_, err = aead.Decrypt(ciphertext, nonce, []byte("v1:other"))
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("tampered ciphertext fails", func(t *testing.T) {
				ciphertext, nonce, err := aead.Encrypt(plaintext, aad)
				require.NoError(t, err)
				ciphertext[0] ^= 0xFF

				_, err = aead.Decrypt(ciphertext, nonce, aad)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("wrong key fails", func(t *testing.T) {
				ciphertext, nonce, err := aead.Encrypt(plaintext, aad)
				require.NoError(t, err)

				other, err := newCipher(randomKey(t))
				require.NoError(t, err)
				_, err = other.Decrypt(ciphertext, nonce, aad)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("short nonce fails", func(t *testing.T) {
				ciphertext, _, err := aead.Encrypt(plaintext, aad)
				require.NoError(t, err)

				_, err = aead.Decrypt(ciphertext, []byte("short"), aad)
				assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
			})

			t.Run("invalid key size", func(t *testing.T) {
				_, err := newCipher(make([]byte, 16))
				assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
			})
		})
	}
}
