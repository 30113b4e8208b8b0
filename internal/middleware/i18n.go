// internal/middleware/i18n.go
package middleware

import (
	"strings"

	"github.com/bazarco/backend/internal/i18n"

	"github.com/gin-gonic/gin"
)

func I18nMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("lang", resolveLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

// resolveLanguage picks the first preferred language with a loaded catalog.
// Handles headers like "es-MX,es;q=0.9,en;q=0.8".
func resolveLanguage(header string) string {
	supported := make(map[string]bool)
	for _, lang := range i18n.GetSupportedLanguages() {
		supported[lang] = true
	}

	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.Split(part, ";")[0])
		if tag == "" {
			continue
		}
		if supported[tag] {
			return tag
		}
		base := strings.ToLower(strings.SplitN(strings.ReplaceAll(tag, "_", "-"), "-", 2)[0])
		if supported[base] {
			return base
		}
	}
	return "en"
}
