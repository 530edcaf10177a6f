package passes

import (
	"github.com/gin-gonic/gin"
)

func SetupPassRoutes(router *gin.RouterGroup, controller *Controller, adminGuard gin.HandlerFunc) {
	// Public route - QR code target
	router.GET("/passes/verify/:passId", controller.VerifyPass) // GET /api/v1/passes/verify/:passId

	// Admin routes - gate operations
	adminPasses := router.Group("/admin/passes")
	adminPasses.Use(adminGuard)
	{
		adminPasses.POST("/checkin", controller.CheckInPass) // POST /api/v1/admin/passes/checkin
		adminPasses.GET("", controller.ListPasses)           // GET /api/v1/admin/passes
	}
}
