package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"time"

	"osspace/internal/shared/utils/response"
	"osspace/pkg/logger"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "admin_token"

// SessionVerifier resolves an admin session token to the email it belongs
// to. Implemented by the adminauth service.
type SessionVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// AdminAuth guards admin routes. On success the admin's email is stored in
// the request context under "admin_email". All failures get the same
// generic 401.
func AdminAuth(verifier SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil {
			unauthorized(c)
			return
		}

		email, err := verifier.VerifyToken(c.Request.Context(), token)
		if err != nil {
			unauthorized(c)
			return
		}

		c.Set("admin_email", email)
		c.Next()
	}
}

func unauthorized(c *gin.Context) {
	response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
	c.Abort()
}

// DevSecret gates dev-only routes behind a shared-secret header. The
// comparison is constant time; an empty configured secret locks the
// routes entirely.
func DevSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("x-dev-secret")
		if secret == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			response.RespondJSON(c, "error", http.StatusUnauthorized, "Not authenticated", nil, nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequestLogger logs each request with latency after the handler chain.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.LogHTTPRequest(c, time.Since(start))
	}
}
