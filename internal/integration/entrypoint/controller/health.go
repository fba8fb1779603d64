package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// Pinger checks that a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker func(ctx context.Context) bool
	cache           Pinger
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
// A nil cache reports the cache as disabled.
func NewHealthController(dbHealthChecker func(ctx context.Context) bool, cache Pinger) *HealthController {
	return &HealthController{
		dbHealthChecker: dbHealthChecker,
		cache:           cache,
	}
}

// Check handles GET /health requests.
// The API is unavailable without its database; a cache outage only degrades it.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	response := HealthResponse{
		Status:    "ok",
		Database:  "disconnected",
		Cache:     "disabled",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if h.dbHealthChecker != nil && h.dbHealthChecker(ctx) {
		response.Database = "connected"
	}

	if h.cache != nil {
		response.Cache = "connected"
		if err := h.cache.Ping(ctx); err != nil {
			response.Cache = "disconnected"
			response.Status = "degraded"
		}
	}

	status := http.StatusOK
	if response.Database != "connected" {
		response.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, response)
}
