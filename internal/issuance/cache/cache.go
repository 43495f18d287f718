// Package cache provides the TTL key-value backends behind the issuance token store.
package cache

import (
	"errors"
)

// ErrCacheMiss is returned when a key is absent or has expired.
var ErrCacheMiss = errors.New("cache miss")
