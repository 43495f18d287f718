package http

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/allisson/license-manager/internal/httputil"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTimeout     = time.Hour
)

// ipRateLimiterStore holds per-IP rate limiters.
type ipRateLimiterStore struct {
	limiters sync.Map // client IP -> *ipRateLimiterEntry
	rps      float64
	burst    int
}

type ipRateLimiterEntry struct {
	limiter    *rate.Limiter
	mu         sync.Mutex
	lastAccess time.Time
}

// DownloadRateLimitMiddleware enforces per-IP rate limiting on the unauthenticated
// download endpoint, which slows down token guessing.
//
// Stale limiters are purged in the background until ctx is cancelled. Rejected
// requests get 429 with a Retry-After header.
func DownloadRateLimitMiddleware(ctx context.Context, rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := &ipRateLimiterStore{
		rps:   rps,
		burst: burst,
	}

	go store.cleanupStale(ctx, limiterCleanupInterval)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		limiter := store.getLimiter(clientIP)

		if !limiter.Allow() {
			reservation := limiter.Reserve()
			retryAfter := int(math.Ceil(reservation.Delay().Seconds()))
			reservation.Cancel()

			logger.Debug("download rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.Int("retry_after", retryAfter))

			c.Header("Retry-After", strconv.Itoa(retryAfter))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httputil.ErrorResponse{
				Error:   "rate_limit_exceeded",
				Message: "Too many download requests from this IP. Please retry after the specified delay.",
			})
			return
		}

		c.Next()
	}
}

func (s *ipRateLimiterStore) getLimiter(ip string) *rate.Limiter {
	now := time.Now()

	val, loaded := s.limiters.LoadOrStore(ip, &ipRateLimiterEntry{
		limiter:    rate.NewLimiter(rate.Limit(s.rps), s.burst),
		lastAccess: now,
	})
	entry := val.(*ipRateLimiterEntry)

	if loaded {
		entry.mu.Lock()
		entry.lastAccess = now
		entry.mu.Unlock()
	}
	return entry.limiter
}

// cleanupStale removes limiters idle for longer than limiterIdleTimeout.
func (s *ipRateLimiterStore) cleanupStale(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.purgeIdle(time.Now().Add(-limiterIdleTimeout))
		}
	}
}

func (s *ipRateLimiterStore) purgeIdle(threshold time.Time) {
	s.limiters.Range(func(key, value any) bool {
		entry := value.(*ipRateLimiterEntry)
		entry.mu.Lock()
		idle := entry.lastAccess.Before(threshold)
		entry.mu.Unlock()

		if idle {
			s.limiters.Delete(key)
		}
		return true
	})
}
