package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache.
//
// Expired entries are never returned: reads check the deadline, and a background
// sweep started by Start reclaims memory for keys that are never read again.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
	logger  *slog.Logger

	stop      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// MemoryCacheOption configures a MemoryCache.
type MemoryCacheOption func(*MemoryCache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MemoryCacheOption {
	return func(c *MemoryCache) {
		c.now = now
	}
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache(logger *slog.Logger, opts ...MemoryCacheOption) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		logger:  logger,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetNX stores value under key for ttl unless a live entry already exists.
func (c *MemoryCache) SetNX(_ context.Context, key string, value []byte, ttl time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if entry, ok := c.entries[key]; ok && now.Before(entry.expiresAt) {
		return false, nil
	}

	stored := make([]byte, len(value))
	copy(stored, value)
	c.entries[key] = memoryEntry{value: stored, expiresAt: now.Add(ttl)}
	return true, nil
}

// Get returns a copy of the value stored under key.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lookup(key)
	if !ok {
		return nil, ErrCacheMiss
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

// GetDel returns the value stored under key and removes it atomically.
func (c *MemoryCache) GetDel(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.lookup(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	delete(c.entries, key)
	return entry.value, nil
}

// lookup must be called with mu held. Expired entries are dropped on sight.
func (c *MemoryCache) lookup(key string) (memoryEntry, bool) {
	entry, ok := c.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}

// Len returns the number of stored entries, including expired ones not yet swept.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Sweep removes every expired entry and returns how many were removed.
func (c *MemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if !now.Before(entry.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Start runs Sweep every interval until Close is called. Calling Start more than
// once has no effect.
func (c *MemoryCache) Start(interval time.Duration) {
	c.startOnce.Do(func() {
		go c.sweepLoop(interval)
	})
}

func (c *MemoryCache) sweepLoop(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			if removed := c.Sweep(); removed > 0 {
				c.logger.Debug("swept expired issuance tokens", slog.Int("removed", removed))
			}
		}
	}
}

// Close stops the sweep goroutine and waits for it to exit. It is safe to call
// Close without Start and more than once.
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stop)
		started := true
		c.startOnce.Do(func() { started = false })
		if started {
			<-c.done
		}
	})
	return nil
}
