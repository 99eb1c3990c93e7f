package handlers

import (
	"net/http"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/Mapsqc/ProjetLajoie/internal/services"
	"github.com/Mapsqc/ProjetLajoie/pkg/utils"
	"github.com/gin-gonic/gin"
)

// SpotHandler exposes spot catalog management over HTTP.
type SpotHandler struct {
	spotService services.SpotService
}

// NewSpotHandler creates a new SpotHandler.
func NewSpotHandler(ss services.SpotService) *SpotHandler {
	return &SpotHandler{spotService: ss}
}

// CreateSpot handles POST /spots.
func (h *SpotHandler) CreateSpot(c *gin.Context) {
	var req services.CreateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	spot, err := h.spotService.CreateSpot(req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, spot)
}

// GetSpots handles GET /spots with optional filters.
func (h *SpotHandler) GetSpots(c *gin.Context) {
	var filters models.SpotFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, "Invalid query parameters: "+err.Error())
		return
	}

	spots, totalCount, err := h.spotService.GetSpots(filters)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        spots,
		"total_count": totalCount,
		"page":        filters.Page,
		"page_size":   filters.PageSize,
	})
}

// GetSpotByID handles GET /spots/:id.
func (h *SpotHandler) GetSpotByID(c *gin.Context) {
	spot, err := h.spotService.GetSpotByID(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

// UpdateSpot handles PATCH /spots/:id.
func (h *SpotHandler) UpdateSpot(c *gin.Context) {
	var req services.UpdateSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	spot, err := h.spotService.UpdateSpot(c.Param("id"), req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

// ToggleSpotActive handles POST /spots/:id/toggle-active.
func (h *SpotHandler) ToggleSpotActive(c *gin.Context) {
	spot, err := h.spotService.ToggleSpotActive(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, spot)
}

// DeleteSpot handles DELETE /spots/:id. Deletion is refused while
// reservations reference the spot; deactivate instead.
func (h *SpotHandler) DeleteSpot(c *gin.Context) {
	if err := h.spotService.DeleteSpot(c.Param("id")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Spot deleted successfully"})
}
