package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Vanohime/Management-Recommendations/internal/models"
	"github.com/Vanohime/Management-Recommendations/internal/services"
	"github.com/Vanohime/Management-Recommendations/internal/similarity"
)

// RecommendationHandler serves the forecast and recommendation endpoints.
type RecommendationHandler struct {
	service *services.RecommendationService
	logger  *logrus.Logger
}

func NewRecommendationHandler(service *services.RecommendationService, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{service: service, logger: logger}
}

// GetRecommendation handles POST /api/v1/recommendations.
func (h *RecommendationHandler) GetRecommendation(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.GetRecommendation(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDetailedRecommendation handles POST /api/v1/recommendations/detailed.
func (h *RecommendationHandler) GetDetailedRecommendation(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.GetDetailedAnalysis(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// respondError maps pipeline errors onto HTTP status codes. Errors pass
// through the orchestrator unmodified, so inspection happens only here.
func (h *RecommendationHandler) respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var dimensionErr *similarity.DimensionMismatchError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
	case errors.Is(err, models.ErrStoreNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotReady):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service is still initializing"})
	case errors.As(err, &dimensionErr):
		h.logger.WithError(err).Error("Feature space inconsistency")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal feature space inconsistency"})
	default:
		h.logger.WithError(err).Error("Recommendation request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
