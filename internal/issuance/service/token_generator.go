package service

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/allisson/license-manager/internal/errors"
)

// tokenEntropyBytes is the amount of randomness in an issuance token.
const tokenEntropyBytes = 32

type tokenGenerator struct{}

// NewTokenGenerator creates a TokenGenerator producing 256-bit random tokens encoded
// as unpadded base64url and hashed with SHA-256.
func NewTokenGenerator() TokenGenerator {
	return &tokenGenerator{}
}

// GenerateToken creates a token that carries no information about the license it unlocks.
func (g *tokenGenerator) GenerateToken() (string, string, error) {
	randomBytes := make([]byte, tokenEntropyBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", errors.Wrap(err, "failed to generate random token")
	}

	plainToken := base64.RawURLEncoding.EncodeToString(randomBytes)
	return plainToken, g.HashToken(plainToken), nil
}

// HashToken returns the hex SHA-256 of the token, so backends never hold tokens.
func (g *tokenGenerator) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}
