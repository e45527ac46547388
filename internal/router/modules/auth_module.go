package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rizkypratama/survey-api/internal/application"
	"github.com/rizkypratama/survey-api/internal/container"
	handlers "github.com/rizkypratama/survey-api/internal/interface/http"
	"github.com/rizkypratama/survey-api/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
	Svc     *application.AuthService
}

func NewAuthModule(h *handlers.AuthHandler, svc *application.AuthService) *AuthModule {
	return &AuthModule{Handler: h, Svc: svc}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	refreshLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/refresh", refreshLimiter, m.Handler.Refresh)

	// Bearer-protected
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Svc))
	auth.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/auth/logout", m.Handler.Logout)
		auth.GET("/auth/verify", m.Handler.Verify)
	}
}
