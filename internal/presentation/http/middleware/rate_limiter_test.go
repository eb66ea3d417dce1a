package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func limitedRouter(rl *OwnerRateLimiter, owner uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if owner != uuid.Nil {
			c.Set("user_id", owner)
		}
		c.Next()
	})
	r.Use(rl.Middleware())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestOwnerRateLimiter_BurstThenReject(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewOwnerRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 2})
	router := limitedRouter(rl, uuid.New())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, 1, rl.ActiveOwners())
}

func TestOwnerRateLimiter_OwnersAreIndependent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewOwnerRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	a := limitedRouter(rl, uuid.New())
	b := limitedRouter(rl, uuid.New())

	w := httptest.NewRecorder()
	a.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	b.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 2, rl.ActiveOwners())
}

func TestOwnerRateLimiter_AnonymousPassesThrough(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewOwnerRateLimiter(ctx, RateLimiterConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	router := limitedRouter(rl, uuid.Nil)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
	assert.Zero(t, rl.ActiveOwners())
}

func TestOwnerRateLimiter_CleanupEvictsStaleOwners(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rl := NewOwnerRateLimiter(ctx, RateLimiterConfig{EntryTTL: time.Minute})
	rl.now = func() time.Time { return now }

	rl.getLimiter(uuid.New())
	assert.Equal(t, 1, rl.ActiveOwners())

	now = now.Add(2 * time.Minute)
	rl.cleanup()
	assert.Zero(t, rl.ActiveOwners())
}
