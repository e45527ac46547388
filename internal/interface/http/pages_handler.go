package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rizkypratama/survey-api/pkg/response"
)

// PagesHandler serves the few server-rendered endpoints around the SPA:
// the gated dashboard shell and the redirect targets of the gate.
type PagesHandler struct{}

func NewPagesHandler() *PagesHandler {
	return &PagesHandler{}
}

// Dashboard GET /dashboard/*path, behind the gate.
func (h *PagesHandler) Dashboard(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"page": c.Param("path")}, "Dashboard")
}

// Login GET /auth/login, the gate's unauthenticated landing.
func (h *PagesHandler) Login(c *gin.Context) {
	response.Success[any](c, http.StatusOK, nil, "Please log in")
}

// Forbidden GET /forbidden, the gate's rejection landing.
func (h *PagesHandler) Forbidden(c *gin.Context) {
	response.Error(c, http.StatusForbidden, "Access denied", "FORBIDDEN", nil)
}
