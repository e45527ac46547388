package router

import "github.com/gin-gonic/gin"

// Module is a feature unit (auth, surveys, admin, ...) that registers its
// own routes on the shared RouterGroup.
type Module interface {
	Register(rg *gin.RouterGroup)
}
