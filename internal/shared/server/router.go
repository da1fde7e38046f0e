package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"farmhub-backend/internal/croprec"
	"farmhub-backend/internal/marketplace"
	"farmhub-backend/internal/practices"
	"farmhub-backend/internal/shared/config"
	"farmhub-backend/internal/shared/metrics"
	"farmhub-backend/internal/shared/server/middleware"
	"farmhub-backend/internal/shared/server/respond"
	"farmhub-backend/internal/yield"
)

// RouterDeps carries the handlers the router mounts. Nil handlers are skipped.
type RouterDeps struct {
	Config           config.Config
	YieldHandler     *yield.Handler
	MarketHandler    *marketplace.Handler
	PracticesHandler *practices.Handler
	CropHandler      *croprec.Handler
	Limiter          *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if !config.IsDevLike(deps.Config.Env) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(rateLimitConfig(deps)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	farmer := api.Group("/farmer")
	if deps.YieldHandler != nil {
		deps.YieldHandler.RegisterRoutes(farmer)
	}
	if deps.MarketHandler != nil {
		deps.MarketHandler.RegisterRoutes(farmer)
	}
	if deps.PracticesHandler != nil {
		deps.PracticesHandler.RegisterRoutes(farmer)
	}
	if deps.CropHandler != nil {
		deps.CropHandler.RegisterRoutes(farmer)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "route not found", nil)
	})

	return r
}

// Estimates and recommendations share the stricter POST budget; reads get
// twice the rate.
func rateLimitConfig(deps RouterDeps) middleware.RateLimitConfig {
	rps := deps.Config.RateLimitRPS
	burst := deps.Config.RateLimitBurst
	if rps <= 0 || burst <= 0 {
		return middleware.RateLimitConfig{Limiter: deps.Limiter}
	}
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			middleware.GroupEstimate: {Rate: rps, Burst: burst},
			middleware.GroupDefault:  {Rate: rps * 2, Burst: burst * 2},
		},
		GroupFor: middleware.EstimateGroup,
		Limiter:  deps.Limiter,
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
