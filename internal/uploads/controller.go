package uploads

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

// UploadImage handles POST /admin/uploads.
func (ctrl *Controller) UploadImage(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	result, err := ctrl.service.SaveImage(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Image uploaded", result)
}

func SetupUploadRoutes(router *gin.RouterGroup, controller *Controller, adminGuard gin.HandlerFunc) {
	adminUploads := router.Group("/admin/uploads")
	adminUploads.Use(adminGuard)
	{
		adminUploads.POST("", controller.UploadImage) // POST /api/v1/admin/uploads
	}
}
