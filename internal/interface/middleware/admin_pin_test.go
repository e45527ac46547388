package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pinRouter(pin string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", AdminPin(pin), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func TestAdminPinMissing(t *testing.T) {
	r := pinRouter("1234")
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Admin PIN is required")
}

func TestAdminPinWrong(t *testing.T) {
	r := pinRouter("1234")
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(AdminPinHeader, "9999")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid admin PIN")
}

func TestAdminPinCorrect(t *testing.T) {
	r := pinRouter("1234")
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(AdminPinHeader, "1234")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
