package response

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/spendtrails-site/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Data  interface{}            `json:"data,omitempty"`
	Error *appErrors.Error       `json:"error,omitempty"`
	Meta  map[string]interface{} `json:"meta,omitempty"`
}

// JSON sends a success response with optional metadata. Content responses are cacheable by
// intermediaries for maxAge seconds; zero disables caching.
func JSON(c *gin.Context, status int, data interface{}, maxAge int, meta ...map[string]interface{}) {
	setCacheHeaders(c, maxAge)
	envelope := Envelope{Data: data}
	if len(meta) > 0 && meta[0] != nil {
		envelope.Meta = meta[0]
	}
	c.JSON(status, envelope)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	setCacheHeaders(c, 0)
	c.JSON(appErr.Status, Envelope{Error: appErr})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func setCacheHeaders(c *gin.Context, maxAge int) {
	if maxAge <= 0 {
		c.Header("Cache-Control", "no-store")
		c.Header("Pragma", "no-cache")
		return
	}
	c.Header("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
}
