package api

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/pageza/habyx/backend/internal/middleware"
	"github.com/pageza/habyx/backend/internal/mocks"
	"github.com/pageza/habyx/backend/internal/types"
)

const testToken = "valid-token"

type routeRegistrar interface {
	RegisterRoutes(router *gin.RouterGroup)
}

// newProtectedRouter mounts h under /api behind AuthMiddleware. testToken
// authenticates as userID; every other token is rejected.
func newProtectedRouter(t *testing.T, userID uint, h routeRegistrar) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	RegisterValidators()

	auth := new(mocks.MockAuthService)
	auth.On("ValidateToken", testToken).Return(&types.TokenClaims{UserID: userID}, nil)
	auth.On("ValidateToken", mock.Anything).Return(nil, errors.New("invalid token"))

	router := gin.New()
	group := router.Group("/api")
	group.Use(middleware.AuthMiddleware(auth))
	h.RegisterRoutes(group)
	return router
}

func nopLogger() *zap.Logger { return zap.NewNop() }
