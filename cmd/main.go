package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/rizkypratama/survey-api/config"
	"github.com/rizkypratama/survey-api/internal/container"
	pginfra "github.com/rizkypratama/survey-api/internal/infrastructure/postgres"
	handlers "github.com/rizkypratama/survey-api/internal/interface/http"
	"github.com/rizkypratama/survey-api/internal/interface/middleware"
	"github.com/rizkypratama/survey-api/internal/router"
	"github.com/rizkypratama/survey-api/pkg/helpers"
	"github.com/rizkypratama/survey-api/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife, cfg.DBPingTimeout)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("migration failed: %v", err)
	}

	rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	defer func() { _ = rdb.Close() }()

	esClient, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass, cfg.ESDialTimeout)
	if err != nil {
		logger.WithError(err).Warn("elasticsearch unavailable; search and indexing disabled")
	}

	gcs, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
	if err != nil {
		logger.WithError(err).Warn("gcs unavailable; exports disabled")
	} else {
		defer func() { _ = gcs.Close() }()
	}

	var rabbitPub *helpers.RabbitPublisher
	if cfg.MailSendEnabled && cfg.RabbitMQURL != "" {
		rabbitPub, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; transactional emails disabled")
		} else {
			defer rabbitPub.Close()
		}
	}

	jwtManager := helpers.NewJWTManager(
		cfg.JWTAccessSecret, cfg.JWTRefreshSecret,
		cfg.AccessTTL, cfg.RefreshTTL,
		cfg.JWTIssuer, cfg.JWTAudience,
	)

	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetPGPool(pool)
	container.SetRedis(rdb)
	container.SetGCS(gcs)
	container.SetJWT(jwtManager)
	container.SetRabbitPub(rabbitPub)
	container.SetES(esClient)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Pin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	registerPages(r, cfg)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatalf("server forced to shutdown: %v", err)
	}
	logger.Info("server exited properly")
}

// registerPages mounts the gated dashboard pages and the gate's redirect
// targets outside the /api group.
func registerPages(r *gin.Engine, cfg *config.Config) {
	pages := handlers.NewPagesHandler()

	gate := middleware.DashboardGate(middleware.GateConfig{
		VerifyURL: cfg.VerifyURL,
		Prefixes:  cfg.GatePrefixes(),
		Client:    &http.Client{Timeout: cfg.VerifyTimeout},
	})

	r.GET("/auth/login", pages.Login)
	r.GET("/forbidden", pages.Forbidden)
	r.GET("/dashboard/*path", gate, pages.Dashboard)
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
