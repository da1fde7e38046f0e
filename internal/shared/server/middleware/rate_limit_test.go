package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(limiter *RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		GroupFor: EstimateGroup,
		Limiter:  limiter,
		Rules: map[string]RateLimitRule{
			GroupDefault:  {Rate: 5, Burst: 10},
			GroupEstimate: {Rate: 1, Burst: 2},
		},
	}))
	r.GET("/api/farmer/marketplace/marketdata", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.POST("/api/farmer/yieldestimation/estimatedyield", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRateLimitEstimateStricterThanDefault(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(NewRateLimiter(func() time.Time { return now }))

	for i := 0; i < 3; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/farmer/marketplace/marketdata", nil))
		require.Equal(t, http.StatusOK, resp.Code, "catalog request %d", i+1)
	}
	for i := 0; i < 2; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/farmer/yieldestimation/estimatedyield", nil))
		require.Equal(t, http.StatusOK, resp.Code, "estimate request %d", i+1)
	}

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/farmer/yieldestimation/estimatedyield", nil))
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)
}

func TestRateLimit429IncludesRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := newLimitedRouter(NewRateLimiter(func() time.Time { return now }))

	var resp *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		resp = httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/farmer/yieldestimation/estimatedyield", nil))
	}

	require.Equal(t, http.StatusTooManyRequests, resp.Code)
	assert.Equal(t, "1", resp.Header().Get("Retry-After"))
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				RetryAfterMs int `json:"retryAfterMs"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "rate_limited", body.Error.Code)
	assert.Equal(t, 1000, body.Error.Details.RetryAfterMs)
}

func TestRateLimiterRefillsAndPrunes(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })
	rule := RateLimitRule{Rate: 2, Burst: 1}

	ok, _ := limiter.Allow("k", rule)
	assert.True(t, ok)
	ok, wait := limiter.Allow("k", rule)
	assert.False(t, ok)
	assert.Equal(t, 500*time.Millisecond, wait)

	now = now.Add(500 * time.Millisecond)
	ok, _ = limiter.Allow("k", rule)
	assert.True(t, ok)

	now = now.Add(time.Hour)
	assert.Equal(t, 1, limiter.Prune(time.Minute))
}
