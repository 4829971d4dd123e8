package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/habyx/backend/config"
	"github.com/pageza/habyx/backend/internal/api"
	"github.com/pageza/habyx/backend/internal/authz"
	"github.com/pageza/habyx/backend/internal/database"
	"github.com/pageza/habyx/backend/internal/middleware"
	"github.com/pageza/habyx/backend/internal/router"
	"github.com/pageza/habyx/backend/internal/service"
	"github.com/pageza/habyx/backend/internal/storage"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	log    *zap.Logger
}

// Deps are the connections the server is built on. Redis is optional.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Images storage.ImageStore
	Log    *zap.Logger
}

// New wires services and handlers into a server.
func New(ctx context.Context, cfg *config.Config, deps Deps) (*Server, error) {
	authorizer, err := authz.New(ctx)
	if err != nil {
		return nil, err
	}

	authService := service.NewAuthService(deps.DB, cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	profileService := service.NewProfileService(deps.DB, deps.Images, authorizer)
	friendService := service.NewFriendService(deps.DB, authorizer)
	messageService := service.NewMessageService(deps.DB, authorizer)

	opts := router.Options{
		Log:         deps.Log,
		CORSOrigins: cfg.CORSOrigins,
		Validator:   authService,
		HealthCheck: func(ctx context.Context) error {
			return database.HealthCheck(ctx, deps.DB)
		},
	}
	if deps.Redis != nil && cfg.RateLimitPerMinute > 0 {
		opts.RateLimiter = middleware.NewAPIRateLimiter(deps.Redis, cfg.RateLimitPerMinute, deps.Log)
	}
	if local, ok := deps.Images.(*storage.LocalStore); ok {
		opts.ImageDir = local.Dir()
	}

	engine := router.SetupRouter(opts, router.Handlers{
		Auth:     api.NewAuthHandler(authService, deps.Log),
		Profiles: api.NewProfileHandler(profileService, cfg.MaxUploadBytes, deps.Log),
		Friends:  api.NewFriendHandler(friendService, deps.Log),
		Messages: api.NewMessageHandler(messageService, deps.Log),
	})

	return &Server{
		router: engine,
		log:    deps.Log,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
