package cors

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	allowHeaders  = "Content-Type, X-Requested-With, X-Request-ID"
	allowMethods  = "GET, HEAD, OPTIONS"
	exposeHeaders = "X-Request-ID, X-Content-Mode, Cache-Control"
)

// originMatcher accepts exact origins and single-label wildcard patterns such as
// "https://*.spendtrails.com", which covers preview deployments of the site.
type originMatcher struct {
	exact    map[string]struct{}
	suffixes []wildcard
}

type wildcard struct {
	scheme string
	suffix string
}

func newOriginMatcher(allowed []string) originMatcher {
	m := originMatcher{exact: make(map[string]struct{}, len(allowed))}
	for _, origin := range allowed {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if scheme, rest, ok := strings.Cut(origin, "://*."); ok {
			m.suffixes = append(m.suffixes, wildcard{scheme: scheme + "://", suffix: "." + rest})
			continue
		}
		m.exact[origin] = struct{}{}
	}
	return m
}

func (m originMatcher) allows(origin string) bool {
	origin = strings.TrimRight(origin, "/")
	if _, ok := m.exact[origin]; ok {
		return true
	}
	for _, w := range m.suffixes {
		host, ok := strings.CutPrefix(origin, w.scheme)
		if !ok || !strings.HasSuffix(host, w.suffix) {
			continue
		}
		label := strings.TrimSuffix(host, w.suffix)
		if label != "" && !strings.ContainsAny(label, "./:") {
			return true
		}
	}
	return false
}

// New returns a read-only CORS middleware for the content API. An empty origin list allows any
// origin, which suits a public marketing site.
func New(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	matcher := newOriginMatcher(allowedOrigins)

	return func(c *gin.Context) {
		header := c.Writer.Header()
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			header.Set("Access-Control-Allow-Origin", "*")
		case origin != "" && matcher.allows(origin):
			header.Set("Access-Control-Allow-Origin", origin)
			header.Add("Vary", "Origin")
		}

		header.Set("Access-Control-Allow-Headers", allowHeaders)
		header.Set("Access-Control-Allow-Methods", allowMethods)
		header.Set("Access-Control-Expose-Headers", exposeHeaders)
		header.Set("Access-Control-Max-Age", "600")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
