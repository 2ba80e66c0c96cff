package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/spendtrails-site/internal/models"
	"github.com/noah-isme/spendtrails-site/internal/service"
)

type readinessSource interface {
	Mode() models.ConfigurationMode
	State() models.ClientState
}

type warmupStatus interface {
	Done() bool
}

type cachePinger interface {
	Ping(ctx context.Context) error
}

const cachePingTimeout = time.Second

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	client  readinessSource
	warmup  warmupStatus
	cache   cachePinger
}

// NewMetricsHandler constructs a metrics handler. warmup may be nil when warm-up is disabled.
func NewMetricsHandler(metrics *service.MetricsService, client readinessSource, warmup warmupStatus) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, client: client, warmup: warmup}
}

// WithCacheCheck makes Ready report the health of the content cache. The cache is optional, so
// an unreachable cache is reported but does not fail readiness.
func (h *MetricsHandler) WithCacheCheck(cache cachePinger) *MetricsHandler {
	h.cache = cache
	return h
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health responds with a generic OK payload for liveness usage.
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready reports readiness. The site serves content in both modes, so an initialised client is ready.
func (h *MetricsHandler) Ready(c *gin.Context) {
	if h.client == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	state := h.client.State()
	if !state.IsInitialized {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "initialising", "mode": state.Mode})
		return
	}

	body := gin.H{"status": "ready", "mode": h.client.Mode()}
	if state.LastError != "" {
		body["last_error"] = state.LastError
	}
	if h.warmup != nil {
		body["warmup_complete"] = h.warmup.Done()
	}
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), cachePingTimeout)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			body["cache"] = "unavailable"
		} else {
			body["cache"] = "ok"
		}
	}
	c.JSON(http.StatusOK, body)
}
