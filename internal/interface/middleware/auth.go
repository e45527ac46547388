package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rizkypratama/survey-api/internal/application"
	"github.com/rizkypratama/survey-api/pkg/helpers"
	"github.com/rizkypratama/survey-api/pkg/response"
)

// Context keys set by RequireAuth.
const (
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxAuthUserKey  = "authUser"
)

// RequireAuth gates a route behind a bearer access token. The token must
// verify and belong to an existing active user; the resolved user is set
// into the context for handlers.
func RequireAuth(svc *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.AbortError(c, http.StatusUnauthorized, "Authorization header is required", "AUTH_REQUIRED")
			return
		}
		token := helpers.ExtractBearerToken(header)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "Invalid authorization header format", "AUTH_MALFORMED")
			return
		}
		user, err := svc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token", "AUTH_INVALID")
			return
		}
		c.Set(CtxUserIDKey, user.ID)
		c.Set(CtxUserEmailKey, user.Email)
		c.Set(CtxAuthUserKey, user)
		c.Next()
	}
}

// AuthUserFrom returns the user resolved by RequireAuth, or nil when the
// middleware did not run.
func AuthUserFrom(c *gin.Context) *application.AuthUser {
	v, ok := c.Get(CtxAuthUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*application.AuthUser)
	return u
}
