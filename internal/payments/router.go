package payments

import (
	"github.com/gin-gonic/gin"
)

func SetupPaymentRoutes(router *gin.RouterGroup, controller *Controller) {
	payments := router.Group("/payments")
	{
		payments.POST("/orders", controller.CreateOrder) // POST /api/v1/payments/orders
	}
}

// SetupDevRoutes registers the simulated provider webhook. Callers must
// only invoke this when dev endpoints are enabled; production startup
// never registers the route.
func SetupDevRoutes(router *gin.RouterGroup, controller *Controller, devSecretGuard gin.HandlerFunc) {
	dev := router.Group("/payments/dev")
	dev.Use(devSecretGuard)
	{
		dev.POST("/confirm", controller.DevConfirmPayment) // POST /api/v1/payments/dev/confirm
	}
}
