package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the uniform response wrapper: {success, message, data} on
// success, {success:false, error} on failure. Handlers never put internal
// error details into Error; Details carries field-level validation info only.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func Success[T any](c *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope[T]{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func Error(c *gin.Context, status int, message string, code string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, Envelope[any]{
		Success: false,
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// AbortError writes the error envelope and stops the handler chain.
func AbortError(c *gin.Context, status int, message string, code string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, Envelope[any]{
		Success: false,
		Error:   message,
		Code:    code,
	})
}
