package adminauth

import (
	"net/http"

	"osspace/internal/shared/utils/response"
	"osspace/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const sessionCookie = "admin_token"

type Controller struct {
	service   Service
	validator *validator.Validate
	cookieTTL int
	secure    bool
	log       *logger.Logger
}

func NewController(service Service, cookieTTLSeconds int, secureCookies bool, log *logger.Logger) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
		cookieTTL: cookieTTLSeconds,
		secure:    secureCookies,
		log:       log,
	}
}

// Login handles POST /admin/auth.
func (ctrl *Controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := ctrl.validator.Struct(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	token, result, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		ctrl.log.LogAuthFailure(c.Request.Context(), "login rejected", c.ClientIP())
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, ctrl.cookieTTL, "/", "", ctrl.secure, true)
	response.Success(c, http.StatusOK, "Logged in", result)
}

// Session handles GET /admin/auth, reporting who the cookie belongs to.
func (ctrl *Controller) Session(c *gin.Context) {
	token, err := c.Cookie(sessionCookie)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
		return
	}

	session, err := ctrl.service.Verify(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Session active", SessionResponse{
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	})
}

// Logout handles DELETE /admin/auth.
func (ctrl *Controller) Logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		if err := ctrl.service.Logout(c.Request.Context(), token); err != nil {
			ctrl.log.WithError(err).Warn("failed to delete session on logout")
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", ctrl.secure, true)
	response.Success(c, http.StatusOK, "Logged out", nil)
}
