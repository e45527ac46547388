package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rizkypratama/survey-api/internal/container"
	handlers "github.com/rizkypratama/survey-api/internal/interface/http"
	"github.com/rizkypratama/survey-api/internal/interface/middleware"
)

type AdminModule struct {
	Handler *handlers.AdminHandler
	PIN     string
}

func NewAdminModule(h *handlers.AdminHandler, pin string) *AdminModule {
	return &AdminModule{Handler: h, PIN: pin}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/form/admin")
	admin.Use(middleware.AdminPin(m.PIN))
	admin.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()))
	{
		admin.GET("/analytics/summary", m.Handler.Summary)
		admin.GET("/history", m.Handler.History)
		admin.GET("/search", m.Handler.Search)
		admin.POST("/export", m.Handler.Export)
	}
}
