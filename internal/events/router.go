package events

import (
	"github.com/gin-gonic/gin"
)

func SetupEventRoutes(router *gin.RouterGroup, controller *Controller, adminGuard gin.HandlerFunc) {
	// Public routes - browsing
	publicEvents := router.Group("/events")
	{
		publicEvents.GET("", controller.ListEvents)    // GET /api/v1/events
		publicEvents.GET("/:id", controller.GetEvent)  // GET /api/v1/events/:id
	}

	// Admin routes - inventory management
	adminEvents := router.Group("/admin/events")
	adminEvents.Use(adminGuard)
	{
		adminEvents.POST("", controller.CreateEvent)    // POST /api/v1/admin/events
		adminEvents.PUT("/:id", controller.UpdateEvent) // PUT /api/v1/admin/events/:id
		adminEvents.GET("", controller.ListAllEvents)   // GET /api/v1/admin/events
	}
}
