// internal/middleware/logging.go
package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/bazarco/backend/internal/models"
)

const maxAuditBody = 64 << 10

var redactedFields = map[string]bool{
	"password":    true,
	"newPassword": true,
	"token":       true,
	"secret":      true,
}

// AuditLogMiddleware records every mutating request in audit_logs. The row
// is written in the background and never delays the response.
func AuditLogMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodOptions ||
			c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		requestData := readJSONBody(c)

		c.Next()

		var userUUID *uuid.UUID
		if userID, ok := c.Get("user_id"); ok {
			if uid, ok := userID.(string); ok {
				if parsed, err := uuid.Parse(uid); err == nil {
					userUUID = &parsed
				}
			}
		}

		auditLog := &models.AuditLog{
			UserID:       userUUID,
			Action:       c.Request.Method + " " + c.FullPath(),
			ResourceType: extractResourceType(c.Request.URL.Path),
			Status:       c.Writer.Status(),
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			NewValues:    models.JSONB(requestData),
		}
		if c.FullPath() == "" {
			auditLog.Action = c.Request.Method + " " + c.Request.URL.Path
		}

		// Extract resource ID from URL if present
		if resourceID := extractResourceID(c.Request.URL.Path); resourceID != "" {
			if parsed, err := uuid.Parse(resourceID); err == nil {
				auditLog.ResourceID = &parsed
			}
		}

		// Save audit log asynchronously
		go func() {
			if err := db.Create(auditLog).Error; err != nil {
				logrus.WithError(err).Error("Failed to create audit log")
			}
		}()
	}
}

// readJSONBody returns the redacted JSON body and restores it for the
// handler. Multipart uploads and other bodies are not recorded.
func readJSONBody(c *gin.Context) map[string]interface{} {
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), gin.MIMEJSON) {
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxAuditBody+1))
	if err != nil {
		return nil
	}
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), c.Request.Body))
	if len(body) > maxAuditBody {
		return nil
	}

	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil
	}
	for key := range data {
		if redactedFields[key] {
			data[key] = "[REDACTED]"
		}
	}
	return data
}

func extractResourceType(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 1 && parts[0] != "" {
		return parts[0]
	}
	return "unknown"
}

func extractResourceID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	for _, part := range parts {
		if _, err := uuid.Parse(part); err == nil {
			return part
		}
	}
	return ""
}

// RequestLogger logs one structured line per request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := logrus.Fields{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   time.Since(start).Milliseconds(),
			"ip":         c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}
		if userID, ok := c.Get("user_id"); ok {
			fields["user_id"] = userID
		}

		entry := logrus.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("Request processed")
		case status >= http.StatusBadRequest:
			entry.Warn("Request processed")
		default:
			entry.Info("Request processed")
		}
	}
}
