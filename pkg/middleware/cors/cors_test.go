package cors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(New(origins))
	r.GET("/content", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func request(r *gin.Engine, method, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/content", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAllowsListedOrigin(t *testing.T) {
	w := request(newRouter([]string{"https://spendtrails.com/"}), http.MethodGet, "https://spendtrails.com")

	assert.Equal(t, "https://spendtrails.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Content-Mode")
}

func TestRejectsUnlistedOrigin(t *testing.T) {
	w := request(newRouter([]string{"https://spendtrails.com"}), http.MethodGet, "https://evil.example")

	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWildcardOrigins(t *testing.T) {
	r := newRouter([]string{"https://*.spendtrails.com"})

	cases := map[string]bool{
		"https://preview-42.spendtrails.com": true,
		"https://www.spendtrails.com":        true,
		"https://spendtrails.com":            false,
		"https://a.b.spendtrails.com":        false,
		"http://www.spendtrails.com":         false,
		"https://evilspendtrails.com":        false,
	}
	for origin, allowed := range cases {
		got := request(r, http.MethodGet, origin).Header().Get("Access-Control-Allow-Origin")
		if allowed {
			assert.Equal(t, origin, got, origin)
		} else {
			assert.Empty(t, got, origin)
		}
	}
}

func TestPreflightShortCircuits(t *testing.T) {
	w := request(newRouter(nil), http.MethodOptions, "")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, allowMethods, w.Header().Get("Access-Control-Allow-Methods"))
}
