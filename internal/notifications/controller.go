package notifications

import (
	"net/http"

	"osspace/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// ListLogs handles GET /admin/notifications. An optional bookingId query
// parameter narrows the listing to a single booking.
func (ctrl *Controller) ListLogs(c *gin.Context) {
	logs, err := ctrl.service.ListLogs(c.Request.Context(), c.Query("bookingId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Notification logs retrieved", logs)
}
