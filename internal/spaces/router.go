package spaces

import (
	"github.com/gin-gonic/gin"
)

func SetupSpaceRoutes(router *gin.RouterGroup, controller *Controller, adminGuard gin.HandlerFunc) {
	adminSpaces := router.Group("/admin/space-requests")
	adminSpaces.Use(adminGuard)
	{
		adminSpaces.GET("", controller.ListRequests)        // GET /api/v1/admin/space-requests
		adminSpaces.PATCH("/:id", controller.UpdateRequest) // PATCH /api/v1/admin/space-requests/:id
	}
}
