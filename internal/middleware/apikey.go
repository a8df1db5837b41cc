package middleware

import (
	"context"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/gin-gonic/gin"
)

// ServiceKeyAuth authenticates machine collaborators (the sales, order and
// alteration services) by comparing the x-api-key header against the
// configured bcrypt hash. On a match the request proceeds as the service
// principal and JWT auth is skipped; otherwise it falls through to it.
func ServiceKeyAuth(apiKeyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKeyHash == "" {
			c.Next() // Service key auth not configured
			return
		}

		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			c.Next() // No key provided, JWT auth will decide
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(apiKeyHash), []byte(apiKey)); err != nil {
			GetLoggerFromCtx(c.Request.Context()).Warn("Rejected invalid service API key")
			c.Next()
			return
		}

		c.Set(string(userIDKey), ServicePrincipalID)
		c.Set(authMethodKey, "api_key")

		ctx := context.WithValue(c.Request.Context(), userIDKey, ServicePrincipalID)
		enriched := GetLoggerFromCtx(ctx).With(slog.String("user_id", ServicePrincipalID))
		c.Request = c.Request.WithContext(context.WithValue(ctx, loggerCtxKey, enriched))

		c.Next()
	}
}
