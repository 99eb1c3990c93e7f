package handlers

import (
	"net/http"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/Mapsqc/ProjetLajoie/internal/services"
	"github.com/Mapsqc/ProjetLajoie/pkg/utils"
	"github.com/gin-gonic/gin"
)

// ReservationHandler exposes the reservation lifecycle over HTTP.
type ReservationHandler struct {
	reservationService services.ReservationService
}

// NewReservationHandler creates a new ReservationHandler.
func NewReservationHandler(rs services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: rs}
}

// CreateReservation handles POST /reservations.
func (h *ReservationHandler) CreateReservation(c *gin.Context) {
	var req services.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	reservation, err := h.reservationService.CreateReservation(req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// GetReservations handles GET /reservations with optional filters.
func (h *ReservationHandler) GetReservations(c *gin.Context) {
	var filters models.ReservationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		utils.RespondValidationFailed(c, "Invalid query parameters: "+err.Error())
		return
	}

	reservations, totalCount, err := h.reservationService.GetReservations(filters)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":        reservations,
		"total_count": totalCount,
		"page":        filters.Page,
		"page_size":   filters.PageSize,
	})
}

// GetReservationByID handles GET /reservations/:id.
func (h *ReservationHandler) GetReservationByID(c *gin.Context) {
	reservation, err := h.reservationService.GetReservationByID(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// ModifyDates handles PATCH /reservations/:id/dates.
func (h *ReservationHandler) ModifyDates(c *gin.Context) {
	var req services.ModifyDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	reservation, err := h.reservationService.ModifyDates(c.Param("id"), req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// ReassignSpot handles PATCH /reservations/:id/spot.
func (h *ReservationHandler) ReassignSpot(c *gin.Context) {
	var req services.ReassignSpotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	reservation, err := h.reservationService.ReassignSpot(c.Param("id"), req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// ConfirmReservation handles POST /reservations/:id/confirm.
func (h *ReservationHandler) ConfirmReservation(c *gin.Context) {
	reservation, err := h.reservationService.ConfirmReservation(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// CancelReservation handles POST /reservations/:id/cancel.
func (h *ReservationHandler) CancelReservation(c *gin.Context) {
	reservation, err := h.reservationService.CancelReservation(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// CheckInReservation handles POST /reservations/:id/check-in.
func (h *ReservationHandler) CheckInReservation(c *gin.Context) {
	reservation, err := h.reservationService.CheckInReservation(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// CheckOutReservation handles POST /reservations/:id/check-out.
// The body may carry an adjusted departure date.
func (h *ReservationHandler) CheckOutReservation(c *gin.Context) {
	var req services.CheckOutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
			return
		}
	}

	reservation, err := h.reservationService.CheckOutReservation(c.Param("id"), req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// AddNote handles POST /reservations/:id/notes.
func (h *ReservationHandler) AddNote(c *gin.Context) {
	var req services.AddNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, "Invalid request payload: "+err.Error())
		return
	}

	note, err := h.reservationService.AddNote(c.Param("id"), req)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, note)
}

// GetNotes handles GET /reservations/:id/notes.
func (h *ReservationHandler) GetNotes(c *gin.Context) {
	notes, err := h.reservationService.GetNotes(c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, notes)
}

// GetSpotAvailability handles GET /spots/:id/availability.
func (h *ReservationHandler) GetSpotAvailability(c *gin.Context) {
	checkIn := c.Query("check_in")
	checkOut := c.Query("check_out")
	if checkIn == "" || checkOut == "" {
		utils.RespondValidationFailed(c, "check_in and check_out query parameters are required")
		return
	}

	var excludeID *string
	if exclude := c.Query("exclude"); exclude != "" {
		excludeID = &exclude
	}

	available, err := h.reservationService.IsAvailable(c.Param("id"), checkIn, checkOut, excludeID)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"spot_id":   c.Param("id"),
		"check_in":  checkIn,
		"check_out": checkOut,
		"available": available,
	})
}
