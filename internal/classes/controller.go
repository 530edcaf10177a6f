package classes

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

// ListClasses handles GET /api/v1/classes
func (c *Controller) ListClasses(ctx *gin.Context) {
	includeInactive := ctx.Query("includeInactive") == "true"

	sessions, err := c.service.ListClasses(ctx.Request.Context(), includeInactive)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Classes retrieved successfully", sessions)
}

// GetClass handles GET /api/v1/classes/:id
func (c *Controller) GetClass(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("Invalid class session ID"))
		return
	}

	session, err := c.service.GetClassByID(ctx.Request.Context(), id)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Class retrieved successfully", session)
}

// CreateClass handles POST /api/v1/admin/classes
func (c *Controller) CreateClass(ctx *gin.Context) {
	var req CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := c.service.CreateClass(ctx.Request.Context(), req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Class created successfully", session)
}

// UpdateClass handles PUT /api/v1/admin/classes/:id
func (c *Controller) UpdateClass(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		response.Error(ctx, apperrors.Validation("Invalid class session ID"))
		return
	}

	var req UpdateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	session, err := c.service.UpdateClass(ctx.Request.Context(), id, req)
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Class updated successfully", session)
}

// ListAllClasses handles GET /api/v1/admin/classes
func (c *Controller) ListAllClasses(ctx *gin.Context) {
	sessions, err := c.service.ListAllClasses(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Classes retrieved successfully", sessions)
}
