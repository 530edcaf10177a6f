package bookings

import (
	"github.com/gin-gonic/gin"
)

func SetupBookingRoutes(router *gin.RouterGroup, controller *Controller, adminGuard gin.HandlerFunc) {
	publicBookings := router.Group("/bookings")
	{
		publicBookings.POST("", controller.CreateBooking) // POST /api/v1/bookings
		publicBookings.GET("/:id", controller.GetBooking) // GET /api/v1/bookings/:id
	}

	adminBookings := router.Group("/admin/bookings")
	adminBookings.Use(adminGuard)
	{
		adminBookings.GET("", controller.ListBookings) // GET /api/v1/admin/bookings
	}
}
