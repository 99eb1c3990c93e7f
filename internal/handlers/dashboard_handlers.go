package handlers

import (
	"net/http"

	"github.com/Mapsqc/ProjetLajoie/internal/services"
	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the admin dashboard aggregates.
type DashboardHandler struct {
	dashboardService services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(ds services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: ds}
}

// GetStats handles GET /dashboard/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetStats()
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetTodayArrivals handles GET /dashboard/arrivals.
func (h *DashboardHandler) GetTodayArrivals(c *gin.Context) {
	arrivals, err := h.dashboardService.GetTodayArrivals()
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, arrivals)
}

// GetTodayDepartures handles GET /dashboard/departures.
func (h *DashboardHandler) GetTodayDepartures(c *gin.Context) {
	departures, err := h.dashboardService.GetTodayDepartures()
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, departures)
}
