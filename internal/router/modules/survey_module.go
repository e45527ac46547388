package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rizkypratama/survey-api/internal/application"
	"github.com/rizkypratama/survey-api/internal/container"
	handlers "github.com/rizkypratama/survey-api/internal/interface/http"
	"github.com/rizkypratama/survey-api/internal/interface/middleware"
)

type SurveyModule struct {
	Handler *handlers.SurveyHandler
	Svc     *application.AuthService
}

func NewSurveyModule(h *handlers.SurveyHandler, svc *application.AuthService) *SurveyModule {
	return &SurveyModule{Handler: h, Svc: svc}
}

func (m *SurveyModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.RequireAuth(m.Svc))
	auth.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/responses", m.Handler.Submit)
		auth.GET("/responses", m.Handler.ListMine)
	}
}
