package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rizkypratama/survey-api/pkg/response"
)

// AdminPinHeader carries the PIN for the admin analytics endpoints.
const AdminPinHeader = "X-Admin-Pin"

// AdminPin gates admin routes behind a shared PIN. Comparison is
// constant-time so the PIN cannot be probed byte by byte.
func AdminPin(pin string) gin.HandlerFunc {
	want := []byte(pin)
	return func(c *gin.Context) {
		got := c.GetHeader(AdminPinHeader)
		if got == "" {
			response.AbortError(c, http.StatusUnauthorized, "Admin PIN is required", "ADMIN_PIN_REQUIRED")
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), want) != 1 {
			response.AbortError(c, http.StatusUnauthorized, "Invalid admin PIN", "ADMIN_PIN_INVALID")
			return
		}
		c.Next()
	}
}
