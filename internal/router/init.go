package router

import (
	"github.com/rizkypratama/survey-api/internal/application"
	"github.com/rizkypratama/survey-api/internal/container"
	pginfra "github.com/rizkypratama/survey-api/internal/infrastructure/postgres"
	handlers "github.com/rizkypratama/survey-api/internal/interface/http"
	"github.com/rizkypratama/survey-api/internal/router/modules"
	"github.com/rizkypratama/survey-api/pkg/helpers"
)

// InitModules wires every feature module from the container singletons and
// registers them with the registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(container.GetPGPool())
	responseRepo := pginfra.NewResponseRepository(container.GetPGPool())

	var pub application.Publisher
	if p := container.GetRabbitPub(); p != nil {
		pub = p
	}

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger, pub)
	surveySvc := application.NewSurveyService(responseRepo, container.GetES(), cfg.ESResponsesIndex, pub, logger)
	analyticsSvc := application.NewAnalyticsService(
		responseRepo,
		userRepo,
		container.GetRedis(),
		container.GetES(),
		cfg.ESResponsesIndex,
		container.GetGCS(),
		cfg.GCSBucket,
		logger,
	)

	cookies := helpers.NewCookieManager(cfg.CookieDomain, cfg.CookieSecure)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cookies)
	surveyHandler := handlers.NewSurveyHandler(surveySvc, logger)
	adminHandler := handlers.NewAdminHandler(analyticsSvc, logger)
	healthHandler := handlers.NewHealthHandler(container.GetPGPool(), container.GetRedis())

	r.Add(modules.NewAuthModule(authHandler, authSvc))
	r.Add(modules.NewSurveyModule(surveyHandler, authSvc))
	r.Add(modules.NewAdminModule(adminHandler, cfg.AdminPIN))
	r.Add(modules.NewHealthModule(healthHandler))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
