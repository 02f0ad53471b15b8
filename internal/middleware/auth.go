package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"office-hours-server/internal/config"
	"office-hours-server/internal/scheduling"
	"office-hours-server/internal/utils"
)

const principalKey = "principal"

// AuthMiddleware creates a middleware for JWT authentication.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			utils.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(parts[1], cfg.JWTSecret)
		if err != nil {
			_ = c.Error(err)
			utils.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(principalKey, scheduling.Principal{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		})

		c.Next()
	}
}

// OperationGate rejects callers whose role may not run op.
// It should be used *after* AuthMiddleware.
func OperationGate(op scheduling.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFromContext(c)
		if !ok {
			utils.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		if err := scheduling.Authorize(p, op); err != nil {
			if errors.Is(err, scheduling.ErrUnauthenticated) {
				utils.Unauthorized(c, "User not authenticated")
			} else {
				utils.Forbidden(c, "You do not have permission to access this resource.")
			}
			c.Abort()
			return
		}

		c.Next()
	}
}

// PrincipalFromContext returns the caller set by AuthMiddleware.
func PrincipalFromContext(c *gin.Context) (scheduling.Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return scheduling.Principal{}, false
	}
	p, ok := v.(scheduling.Principal)
	return p, ok
}
