package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/habyx/backend/internal/api"
	"github.com/pageza/habyx/backend/internal/middleware"
	"github.com/pageza/habyx/backend/internal/storage"
)

// Options configures the router beyond the handlers.
type Options struct {
	Log         *zap.Logger
	CORSOrigins []string
	// Validator authenticates bearer tokens on protected routes.
	Validator middleware.TokenValidator
	// RateLimiter is optional; requests are not limited when nil.
	RateLimiter *middleware.RateLimiter
	// HealthCheck reports whether the backing stores are reachable.
	HealthCheck func(ctx context.Context) error
	// ImageDir, when set, is served at /ProfileImages.
	ImageDir string
}

// Handlers groups the API handlers mounted under /api.
type Handlers struct {
	Auth     *api.AuthHandler
	Profiles *api.ProfileHandler
	Friends  *api.FriendHandler
	Messages *api.MessageHandler
}

// SetupRouter configures the application routes
func SetupRouter(opts Options, h Handlers) *gin.Engine {
	api.RegisterValidators()

	router := gin.New()
	router.Use(middleware.Recovery(opts.Log))
	router.Use(middleware.RequestLogger(opts.Log))
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/health", healthHandler(opts.HealthCheck))
	if opts.ImageDir != "" {
		router.Static("/"+storage.ImageFolder, opts.ImageDir)
	}

	v1 := router.Group("/api")

	public := v1.Group("")
	if opts.RateLimiter != nil {
		public.Use(opts.RateLimiter.RateLimitMiddleware())
	}
	h.Auth.RegisterRoutes(public)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(opts.Validator))
	if opts.RateLimiter != nil {
		protected.Use(opts.RateLimiter.RateLimitMiddleware())
	}
	h.Profiles.RegisterRoutes(protected)
	h.Friends.RegisterRoutes(protected)
	h.Messages.RegisterRoutes(protected)

	return router
}

func healthHandler(check func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	}
}
