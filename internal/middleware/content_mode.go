package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spendtrails-site/internal/models"
	"github.com/noah-isme/spendtrails-site/pkg/logger"
)

// ContentModeHeader carries the content client's operating mode on every response.
const ContentModeHeader = "X-Content-Mode"

// ModeSource reports the content mode for a request.
type ModeSource interface {
	Mode() models.ConfigurationMode
}

// ContentMode annotates responses with the content mode and exposes it to the access log.
func ContentMode(source ModeSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		if source != nil {
			mode := source.Mode()
			c.Writer.Header().Set(ContentModeHeader, string(mode))
			c.Set(logger.ContentModeKey, string(mode))
		}
		c.Next()
	}
}

// ContentModeFromContext returns the mode recorded by ContentMode, if any.
func ContentModeFromContext(c *gin.Context) models.ConfigurationMode {
	if c == nil {
		return ""
	}
	return models.ConfigurationMode(c.GetString(logger.ContentModeKey))
}
