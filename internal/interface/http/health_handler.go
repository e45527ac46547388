package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/rizkypratama/survey-api/pkg/response"
)

type HealthHandler struct {
	DB  *pgxpool.Pool
	RDB *redis.Client
}

func NewHealthHandler(db *pgxpool.Pool, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{DB: db, RDB: rdb}
}

// Check GET /api/health. The database is load-bearing so its failure makes
// the whole check unhealthy; a cache outage is only reported.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"database": "ok", "redis": "ok"}
	healthy := true

	if h.DB == nil {
		status["database"] = "unconfigured"
		healthy = false
	} else if err := h.DB.Ping(ctx); err != nil {
		status["database"] = "down"
		healthy = false
	}

	if h.RDB == nil {
		status["redis"] = "unconfigured"
	} else if err := h.RDB.Ping(ctx).Err(); err != nil {
		status["redis"] = "down"
	}

	if !healthy {
		response.Error(c, http.StatusServiceUnavailable, "Service unhealthy", "UNHEALTHY", status)
		return
	}
	response.Success(c, http.StatusOK, status, "Service healthy")
}
