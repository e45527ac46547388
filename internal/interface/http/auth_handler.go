package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rizkypratama/survey-api/internal/application"
	"github.com/rizkypratama/survey-api/internal/interface/middleware"
	"github.com/rizkypratama/survey-api/pkg/helpers"
	"github.com/rizkypratama/survey-api/pkg/response"
	"github.com/rizkypratama/survey-api/pkg/validation"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.CookieManager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookies *helpers.CookieManager) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: cookies}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Name     string `json:"name" binding:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", "VALIDATION_ERROR", validation.ToDetails(err))
		return
	}

	res, pair, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, application.ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "User with this email already exists", "EMAIL_TAKEN", nil)
			return
		}
		h.Logger.WithError(err).Error("register failed")
		response.Error(c, http.StatusInternalServerError, "Registration failed", "INTERNAL", nil)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusCreated, res, "Registration successful")
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", "VALIDATION_ERROR", validation.ToDetails(err))
		return
	}

	res, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "Invalid email or password", "INVALID_CREDENTIALS", nil)
		case errors.Is(err, application.ErrAccountDisabled):
			response.Error(c, http.StatusUnauthorized, "Account is deactivated", "ACCOUNT_DISABLED", nil)
		default:
			h.Logger.WithError(err).Error("login failed")
			response.Error(c, http.StatusInternalServerError, "Login failed", "INTERNAL", nil)
		}
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, res, "Login successful")
}

// Refresh POST /api/auth/refresh. The refresh token comes from the body,
// with the cookie as fallback for browser clients.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	_ = c.ShouldBindJSON(&req)
	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie(helpers.RefreshTokenCookie)
	}
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token", "REFRESH_INVALID", nil)
		return
	}

	res, pair, err := h.Svc.Refresh(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, application.ErrInvalidToken) || errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token", "REFRESH_INVALID", nil)
			return
		}
		h.Logger.WithError(err).Error("refresh failed")
		response.Error(c, http.StatusInternalServerError, "Token refresh failed", "INTERNAL", nil)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	response.Success(c, http.StatusOK, res, "Token refreshed")
}

// Logout POST /api/auth/logout (bearer)
func (h *AuthHandler) Logout(c *gin.Context) {
	uid := c.GetString(middleware.CtxUserIDKey)
	if err := h.Svc.Logout(c.Request.Context(), uid); err != nil && !errors.Is(err, application.ErrUserNotFound) {
		h.Logger.WithError(err).WithField("user_id", uid).Error("logout failed")
		response.Error(c, http.StatusInternalServerError, "Logout failed", "INTERNAL", nil)
		return
	}
	h.Cookies.Clear(c)
	response.Success(c, http.StatusOK, gin.H{"loggedOut": true}, "Logout successful")
}

// Verify GET /api/auth/verify (bearer). The dashboard gate consumes this
// shape and checks both top-level fields, so `valid` sits beside the
// envelope keys rather than inside data.
func (h *AuthHandler) Verify(c *gin.Context) {
	user := middleware.AuthUserFrom(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"valid":   false,
			"error":   "Invalid or expired token",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"valid":   true,
		"message": "Token is valid",
		"data":    gin.H{"user": user},
	})
}
