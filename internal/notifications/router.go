package notifications

import (
	"github.com/gin-gonic/gin"
)

func SetupNotificationRoutes(router *gin.RouterGroup, controller *Controller, adminGuard gin.HandlerFunc) {
	adminNotifications := router.Group("/admin/notifications")
	adminNotifications.Use(adminGuard)
	{
		adminNotifications.GET("", controller.ListLogs) // GET /api/v1/admin/notifications
	}
}
