package spaces

import (
	"net/http"

	"osspace/internal/shared/apperrors"
	"osspace/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

// UpdateRequest handles PATCH /api/v1/admin/space-requests/:id
func (c *Controller) UpdateRequest(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("Invalid space request ID"))
		return
	}

	var req UpdateSpaceRequestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	adminEmail := ctx.GetString("admin_email")

	request, err := c.service.UpdateRequest(ctx.Request.Context(), id, adminEmail, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Space request updated successfully", request)
}

// ListRequests handles GET /api/v1/admin/space-requests
func (c *Controller) ListRequests(ctx *gin.Context) {
	requests, err := c.service.ListRequests(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Space requests retrieved successfully", requests)
}
