package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/enuri14/EcoTour-Enuri/pkg/database"
	"github.com/enuri14/EcoTour-Enuri/pkg/redis"
)

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	serviceName string
	version     string
	db          *database.PostgresDB
	redis       *redis.Client
}

// NewHealthHandler creates a new HealthHandler. The redis client may be nil
// when caching is disabled.
func NewHealthHandler(serviceName, version string, db *database.PostgresDB, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		redis:       redisClient,
	}
}

// Health handles GET /health - liveness probe
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready handles GET /ready - readiness probe checking backing stores
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if h.db != nil {
		if err := h.db.HealthCheck(c.Request.Context()); err != nil {
			checks["postgres"] = err.Error()
			healthy = false
		} else {
			checks["postgres"] = "ok"
		}
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	overall := "ready"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "not ready"
	}

	c.JSON(status, gin.H{
		"status": overall,
		"checks": checks,
	})
}
