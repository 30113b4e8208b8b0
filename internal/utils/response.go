// internal/utils/response.go
package utils

import (
	"net/http"

	"github.com/bazarco/backend/internal/i18n"

	"github.com/gin-gonic/gin"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// SuccessResponse writes {status:"success", message, ...data}.
func SuccessResponse(c *gin.Context, statusCode int, message string, data gin.H) {
	body := gin.H{
		"status":  StatusSuccess,
		"message": message,
	}
	for k, v := range data {
		if k == "status" || k == "message" {
			continue
		}
		body[k] = v
	}
	c.JSON(statusCode, body)
}

func OKResponse(c *gin.Context, message string, data gin.H) {
	SuccessResponse(c, http.StatusOK, message, data)
}

func CreatedResponse(c *gin.Context, message string, data gin.H) {
	SuccessResponse(c, http.StatusCreated, message, data)
}

// ErrorResponse writes {status:"error", message}.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{
		"status":  StatusError,
		"message": message,
	})
}

// AbortWithError is ErrorResponse for middleware.
func AbortWithError(c *gin.Context, statusCode int, message string) {
	ErrorResponse(c, statusCode, message)
	c.Abort()
}

func BadRequestResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyValidationInvalid, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, message)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyAuthRequired)
	}
	ErrorResponse(c, http.StatusUnauthorized, message)
}

func ForbiddenResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyForbidden)
	}
	ErrorResponse(c, http.StatusForbidden, message)
}

func NotFoundResponse(c *gin.Context, resource string) {
	message := i18n.T(GetLangFromContext(c), resource+".not_found")
	ErrorResponse(c, http.StatusNotFound, message)
}

func ConflictResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, message)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyInternalError)
	}
	ErrorResponse(c, http.StatusInternalServerError, message)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	lang := GetLangFromContext(c)
	message := i18n.T(lang, i18n.KeyValidationInvalid, "input")
	if len(errors) > 0 {
		message = errors[0].Message
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"status":  StatusError,
		"message": message,
		"errors":  errors,
	})
}

// T translates a message key with the request language.
func T(c *gin.Context, key string, args ...interface{}) string {
	return i18n.T(GetLangFromContext(c), key, args...)
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get("lang"); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "en"
}

func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userID, exists := c.Get("user_id"); exists {
		if userIDStr, ok := userID.(string); ok {
			return userIDStr, true
		}
	}
	return "", false
}

func GetUserRoleFromContext(c *gin.Context) (string, bool) {
	if role, exists := c.Get("user_role"); exists {
		if roleStr, ok := role.(string); ok {
			return roleStr, true
		}
	}
	return "", false
}
