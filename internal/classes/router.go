package classes

import (
	"github.com/gin-gonic/gin"
)

func SetupClassRoutes(router *gin.RouterGroup, controller *Controller, adminGuard gin.HandlerFunc) {
	publicClasses := router.Group("/classes")
	{
		publicClasses.GET("", controller.ListClasses)  // GET /api/v1/classes
		publicClasses.GET("/:id", controller.GetClass) // GET /api/v1/classes/:id
	}

	adminClasses := router.Group("/admin/classes")
	adminClasses.Use(adminGuard)
	{
		adminClasses.POST("", controller.CreateClass)    // POST /api/v1/admin/classes
		adminClasses.PUT("/:id", controller.UpdateClass) // PUT /api/v1/admin/classes/:id
		adminClasses.GET("", controller.ListAllClasses)  // GET /api/v1/admin/classes
	}
}
