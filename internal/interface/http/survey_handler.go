package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rizkypratama/survey-api/internal/application"
	"github.com/rizkypratama/survey-api/internal/interface/middleware"
	"github.com/rizkypratama/survey-api/pkg/response"
	"github.com/rizkypratama/survey-api/pkg/validation"
)

type SurveyHandler struct {
	Svc    *application.SurveyService
	Logger *logrus.Logger
}

func NewSurveyHandler(svc *application.SurveyService, logger *logrus.Logger) *SurveyHandler {
	return &SurveyHandler{Svc: svc, Logger: logger}
}

type submitRequest struct {
	Category string         `json:"category" binding:"required,oneof=product service support website other"`
	Answers  map[string]any `json:"answers" binding:"required"`
	Feedback string         `json:"feedback" binding:"max=2000"`
	Score    int            `json:"score" binding:"min=0,max=10"`
}

// Submit POST /api/responses (bearer)
func (h *SurveyHandler) Submit(c *gin.Context) {
	user := middleware.AuthUserFrom(c)
	if user == nil {
		response.Error(c, http.StatusUnauthorized, "Invalid or expired token", "AUTH_INVALID", nil)
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", "VALIDATION_ERROR", validation.ToDetails(err))
		return
	}

	sr, err := h.Svc.Submit(c.Request.Context(), user, application.SubmitInput{
		Category: req.Category,
		Answers:  req.Answers,
		Feedback: req.Feedback,
		Score:    req.Score,
	})
	if err != nil {
		h.Logger.WithError(err).Error("submit response failed")
		response.Error(c, http.StatusInternalServerError, "Failed to save response", "INTERNAL", nil)
		return
	}
	response.Success(c, http.StatusCreated, sr, "Response recorded")
}

// ListMine GET /api/responses (bearer)
func (h *SurveyHandler) ListMine(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	responses, summary, err := h.Svc.ListMine(c.Request.Context(), uid)
	if err != nil {
		h.Logger.WithError(err).Error("list responses failed")
		response.Error(c, http.StatusInternalServerError, "Failed to load responses", "INTERNAL", nil)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"responses": responses, "summary": summary}, "Responses loaded")
}
