// internal/middleware/auth.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bazarco/backend/internal/i18n"
	"github.com/bazarco/backend/internal/models"
	"github.com/bazarco/backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// UserLookup is the part of the user store the auth middleware needs.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthRequired accepts a valid bearer token whose user still exists, and
// stores the user's id and current role on the context.
func AuthRequired(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, utils.T(c, i18n.KeyAuthRequired))
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, utils.T(c, i18n.KeyAuthInvalidToken))
			return
		}

		claims, err := utils.ValidateJWT(strings.TrimSpace(parts[1]))
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, utils.T(c, i18n.KeyAuthInvalidToken))
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			utils.AbortWithError(c, http.StatusUnauthorized, utils.T(c, i18n.KeyAuthInvalidToken))
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, models.ErrUserNotFound) {
				utils.AbortWithError(c, http.StatusUnauthorized, utils.T(c, i18n.KeyAuthUserNotFound))
				return
			}
			logrus.WithError(err).Error("Failed to load authenticated user")
			utils.AbortWithError(c, http.StatusInternalServerError, utils.T(c, i18n.KeyInternalError))
			return
		}

		// Set user info in context
		c.Set("user_id", user.ID.String())
		c.Set("user_role", string(user.EffectiveRole()))
		c.Next()
	}
}
