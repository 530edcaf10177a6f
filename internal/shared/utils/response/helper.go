package response

import (
	"osspace/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// Success writes a 200-style success envelope.
func Success(c *gin.Context, code int, message string, data interface{}) {
	RespondJSON(c, "success", code, message, data, nil)
}

// Error maps an application error to its HTTP status and client-safe message.
func Error(c *gin.Context, err error) {
	RespondJSON(c, "error", apperrors.HTTPStatus(err), apperrors.ClientMessage(err), nil, nil)
}
