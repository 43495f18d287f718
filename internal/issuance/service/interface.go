// Package service implements the issuance token store: signed artifacts are parked
// under opaque random tokens for a bounded window.
package service

import (
	"context"
	"time"
)

// Cache is a TTL key-value backend. Implementations return cache.ErrCacheMiss for
// absent or expired keys.
type Cache interface {
	// SetNX stores value under key for ttl unless a live entry exists. It reports
	// whether the value was stored.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)

	// Get returns the value stored under key.
	Get(ctx context.Context, key string) ([]byte, error)

	// GetDel returns the value stored under key and removes it atomically.
	GetDel(ctx context.Context, key string) ([]byte, error)
}

// TokenGenerator mints issuance tokens and derives their storage keys.
type TokenGenerator interface {
	// GenerateToken returns a fresh token and its hash.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken returns the storage key for a token.
	HashToken(plainToken string) string
}
