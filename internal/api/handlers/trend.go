package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetStoreTrend handles GET /api/v1/stores/:id/trend.
func (h *RecommendationHandler) GetStoreTrend(c *gin.Context) {
	storeID, err := strconv.Atoi(c.Param("id"))
	if err != nil || storeID < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "store id must be a positive integer"})
		return
	}

	window := 0
	if raw := c.Query("window"); raw != "" {
		window, err = strconv.Atoi(raw)
		if err != nil || window < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "window must be a positive integer"})
			return
		}
	}

	summary, err := h.service.GetStoreTrend(storeID, window)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
