package middleware

import (
	"gyanbrix_backend/internal/config"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/util"
	"gyanbrix_backend/pkg/logger"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthMiddleware validates the Bearer token and stores the parsed claims on
// the request context.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			util.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			util.Unauthorized(c, "Authorization header must be Bearer token")
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(parts[1], cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// RoleMiddleware rejects requests whose token role is not in the allowed set.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c, "Insufficient permissions")
		c.Abort()
	}
}

// UserActivityRepo is the slice of the user repository the activity tracker
// needs.
type UserActivityRepo interface {
	UpdateLastSeen(userID string, at time.Time) error
}

// ActivityMiddleware records last-seen timestamps for authenticated users
// without blocking the request.
func ActivityMiddleware(repo UserActivityRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		claims := util.GetUserFromContext(c)
		if claims == nil {
			return
		}

		go func(userID string) {
			if err := repo.UpdateLastSeen(userID, time.Now()); err != nil {
				logger.Log.Warn("Failed to update user activity",
					zap.String("user_id", userID),
					zap.Error(err))
			}
		}(claims.UserID)
	}
}
