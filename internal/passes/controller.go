package passes

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

// CheckInPass handles POST /admin/passes/checkin.
func (ctrl *Controller) CheckInPass(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	adminEmail := c.GetString("admin_email")
	result, err := ctrl.service.CheckIn(c.Request.Context(), req, adminEmail)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Pass checked in"
	if result.AlreadyCheckedIn {
		message = "Pass already checked in"
	}
	response.Success(c, http.StatusOK, message, result)
}

// VerifyPass handles GET /passes/verify/:passId, the public target of the
// QR code on a pass.
func (ctrl *Controller) VerifyPass(c *gin.Context) {
	result, err := ctrl.service.VerifyPass(c.Request.Context(), c.Param("passId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Pass retrieved", result)
}

// ListPasses handles GET /admin/passes.
func (ctrl *Controller) ListPasses(c *gin.Context) {
	passes, err := ctrl.service.ListPasses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Passes retrieved", passes)
}
