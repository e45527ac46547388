package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rizkypratama/survey-api/internal/application"
	"github.com/rizkypratama/survey-api/pkg/response"
)

type AdminHandler struct {
	Svc    *application.AnalyticsService
	Logger *logrus.Logger
}

func NewAdminHandler(svc *application.AnalyticsService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Logger: logger}
}

// Summary GET /api/form/admin/analytics/summary
func (h *AdminHandler) Summary(c *gin.Context) {
	summary, err := h.Svc.Summary(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("analytics summary failed")
		response.Error(c, http.StatusInternalServerError, "Failed to compute summary", "INTERNAL", nil)
		return
	}
	response.Success(c, http.StatusOK, summary, "Analytics summary")
}

// History GET /api/form/admin/history
func (h *AdminHandler) History(c *gin.Context) {
	rows, err := h.Svc.History(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Error("response history failed")
		response.Error(c, http.StatusInternalServerError, "Failed to load history", "INTERNAL", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"responses": rows}, "Response history")
}

// Search GET /api/form/admin/search?q=...&size=10
func (h *AdminHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error(c, http.StatusBadRequest, "Query parameter q is required", "VALIDATION_ERROR", nil)
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))

	hits, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		h.Logger.WithError(err).Error("response search failed")
		response.Error(c, http.StatusBadGateway, "Search is unavailable", "SEARCH_UNAVAILABLE", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hits": hits, "count": len(hits)}, "Search results")
}

// Export POST /api/form/admin/export
func (h *AdminHandler) Export(c *gin.Context) {
	url, err := h.Svc.ExportCSV(c.Request.Context())
	if err != nil {
		if errors.Is(err, application.ErrExportUnavailable) {
			response.Error(c, http.StatusServiceUnavailable, "Export storage is not configured", "EXPORT_UNAVAILABLE", nil)
			return
		}
		h.Logger.WithError(err).Error("export failed")
		response.Error(c, http.StatusInternalServerError, "Export failed", "INTERNAL", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"url": url}, "Export complete")
}
