// internal/handlers/handler.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bazarco/backend/internal/i18n"
	"github.com/bazarco/backend/internal/models"
	"github.com/bazarco/backend/internal/services"
	"github.com/bazarco/backend/internal/utils"
)

// currentUserID returns the authenticated user, writing a 401 when absent.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := utils.GetUserIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		utils.UnauthorizedResponse(c, utils.T(c, i18n.KeyAuthInvalidToken))
		return uuid.Nil, false
	}
	return userID, true
}

// parseIDParam reads a UUID path parameter, writing a 400 when malformed.
func parseIDParam(c *gin.Context, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyInvalidID, resource))
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps service errors to the error envelope. Anything
// unrecognised is logged and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.BadRequestResponse(c, validationErr.Message)
	case errors.Is(err, services.ErrInvalidImage):
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyProductBadImage))
	case errors.Is(err, models.ErrProductNotFound):
		utils.NotFoundResponse(c, "product")
	case errors.Is(err, models.ErrCategoryNotFound):
		utils.NotFoundResponse(c, "category")
	case errors.Is(err, models.ErrTagNotFound):
		utils.NotFoundResponse(c, "tag")
	case errors.Is(err, models.ErrFavouriteNotFound):
		utils.NotFoundResponse(c, "favourite")
	case errors.Is(err, models.ErrFavouriteExists):
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyFavouriteExists))
	case errors.Is(err, models.ErrInvalidStatusChange):
		utils.BadRequestResponse(c, err.Error())
	case errors.Is(err, models.ErrUserNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, utils.T(c, i18n.KeyAuthUserNotFound))
	case errors.Is(err, models.ErrEmailTaken):
		utils.ConflictResponse(c, utils.T(c, i18n.KeyAuthUserExists))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, utils.T(c, i18n.KeyAuthInvalidCredentials))
	case errors.Is(err, services.ErrDevLoginNotAllowed):
		utils.ForbiddenResponse(c, utils.T(c, i18n.KeyAuthDevLoginDisabled))
	case errors.Is(err, services.ErrInvalidResetToken):
		utils.BadRequestResponse(c, utils.T(c, i18n.KeyAuthResetInvalid))
	default:
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}
