package service

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customValidation "github.com/allisson/license-manager/internal/validation"
)

func TestTokenGenerator_GenerateToken(t *testing.T) {
	gen := NewTokenGenerator()

	token, hash, err := gen.GenerateToken()
	require.NoError(t, err)

	assert.Len(t, token, customValidation.IssuanceTokenLength)
	decoded, err := base64.RawURLEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Len(t, decoded, 32)

	assert.Len(t, hash, 64)
	assert.Equal(t, gen.HashToken(token), hash)
	assert.NotContains(t, hash, token)
}

func TestTokenGenerator_Unique(t *testing.T) {
	gen := NewTokenGenerator()
	seen := make(map[string]struct{})

	for range 1000 {
		token, _, err := gen.GenerateToken()
		require.NoError(t, err)
		_, dup := seen[token]
		require.False(t, dup)
		seen[token] = struct{}{}
	}
}
