package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Vanohime/Management-Recommendations/internal/api/handlers"
	"github.com/Vanohime/Management-Recommendations/internal/middleware"
	"github.com/Vanohime/Management-Recommendations/internal/telemetry"
)

// SetupRoutes registers middleware and all HTTP endpoints.
func SetupRoutes(
	router *gin.Engine,
	recommendations *handlers.RecommendationHandler,
	health *handlers.HealthHandler,
	tracingEnabled bool,
) {
	router.Use(middleware.RequestID())
	if tracingEnabled {
		router.Use(otelgin.Middleware(telemetry.ServiceName))
	}

	router.GET("/", apiIndex)
	router.GET("/health", health.HealthCheck)

	v1 := router.Group("/api/v1")
	{
		recs := v1.Group("/recommendations")
		{
			recs.POST("", recommendations.GetRecommendation)
			recs.POST("/detailed", recommendations.GetDetailedRecommendation)
		}

		stores := v1.Group("/stores")
		{
			stores.GET("/:id/trend", recommendations.GetStoreTrend)
		}
	}
}

func apiIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "Management Recommendations",
		"endpoints": gin.H{
			"POST /api/v1/recommendations":          "Sales forecast and recommendations for a scenario",
			"POST /api/v1/recommendations/detailed": "Forecast with neighbor statistics and benchmark comparison",
			"GET /api/v1/stores/:id/trend":          "Smoothed sales history for a store",
			"GET /health":                           "Health check",
		},
	})
}
