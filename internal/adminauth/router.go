package adminauth

import (
	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(router *gin.RouterGroup, controller *Controller) {
	auth := router.Group("/admin/auth")
	{
		auth.POST("", controller.Login)    // POST /api/v1/admin/auth
		auth.GET("", controller.Session)   // GET /api/v1/admin/auth
		auth.DELETE("", controller.Logout) // DELETE /api/v1/admin/auth
	}
}
