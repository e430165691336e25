package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/Vanohime/Management-Recommendations/internal/database"
	"github.com/Vanohime/Management-Recommendations/internal/services"
)

var startTime = time.Now()

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	db      *database.PostgresDB
	redis   *database.RedisClient
	service *services.RecommendationService
	version string
}

type SystemStats struct {
	MemoryUsedPercent float64 `json:"memory_used_percent"`
	Goroutines        int     `json:"goroutines"`
	NumCPU            int     `json:"num_cpu"`
}

type HealthResponse struct {
	Status     string            `json:"status"`
	Timestamp  time.Time         `json:"timestamp"`
	Version    string            `json:"version"`
	Uptime     string            `json:"uptime"`
	ModelType  string            `json:"model_type"`
	CorpusSize int               `json:"corpus_size"`
	Services   map[string]string `json:"services"`
	System     SystemStats       `json:"system"`
}

func NewHealthHandler(db *database.PostgresDB, redis *database.RedisClient, service *services.RecommendationService, version string) *HealthHandler {
	return &HealthHandler{db: db, redis: redis, service: service, version: version}
}

// HealthCheck handles GET /health.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	checks := make(map[string]string)

	if h.db != nil {
		if err := h.db.HealthCheck(c.Request.Context()); err != nil {
			checks["database"] = "unhealthy: " + err.Error()
		} else {
			checks["database"] = "healthy"
		}
	} else {
		checks["database"] = "unhealthy: not configured"
	}

	if h.redis != nil {
		if err := h.redis.HealthCheck(c.Request.Context()); err != nil {
			checks["redis"] = "unhealthy: " + err.Error()
		} else {
			checks["redis"] = "healthy"
		}
	} else {
		checks["redis"] = "disabled"
	}

	if h.service.Ready() {
		checks["recommendation_service"] = "healthy"
	} else {
		checks["recommendation_service"] = "initializing"
	}

	status := "healthy"
	for _, v := range checks {
		if v != "healthy" && v != "disabled" {
			status = "unhealthy"
			break
		}
	}

	response := HealthResponse{
		Status:     status,
		Timestamp:  time.Now().UTC(),
		Version:    h.version,
		Uptime:     time.Since(startTime).String(),
		ModelType:  h.service.ModelType(),
		CorpusSize: h.service.CorpusSize(),
		Services:   checks,
		System:     collectSystemStats(),
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, response)
}

func collectSystemStats() SystemStats {
	stats := SystemStats{
		Goroutines: runtime.NumGoroutine(),
		NumCPU:     runtime.NumCPU(),
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryUsedPercent = vm.UsedPercent
	}
	return stats
}
