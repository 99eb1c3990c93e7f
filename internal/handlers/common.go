package handlers

import (
	"errors"
	"net/http"

	"github.com/Mapsqc/ProjetLajoie/internal/services"
	"github.com/Mapsqc/ProjetLajoie/pkg/utils"
	"github.com/gin-gonic/gin"
)

// respondWithServiceError translates service-layer sentinel errors into the
// standardized APIError envelope. Anything unrecognized is a storage or
// programming failure and surfaces as a 500.
func respondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrReservationNotFound),
		errors.Is(err, services.ErrSpotNotFound),
		errors.Is(err, services.ErrCustomerNotFound):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Resource not found", err.Error()))

	case errors.Is(err, services.ErrInvalidDateRange),
		errors.Is(err, services.ErrReservationValidation),
		errors.Is(err, services.ErrCustomerValidation),
		errors.Is(err, services.ErrSpotValidation),
		errors.Is(err, services.ErrEmptyNoteText):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Input validation failed", err.Error()))

	case errors.Is(err, services.ErrSpotUnavailable),
		errors.Is(err, services.ErrEmailExists),
		errors.Is(err, services.ErrSpotNameExists),
		errors.Is(err, services.ErrCustomerInUse),
		errors.Is(err, services.ErrSpotInUse):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Conflicting state", err.Error()))

	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrInvalidState),
		errors.Is(err, services.ErrSpotInactive):
		utils.RespondWithError(c, utils.NewAPIError(http.StatusUnprocessableEntity, utils.ErrCodeInvalidState, "Operation not permitted in current state", err.Error()))

	default:
		utils.LogError(err, "Unhandled service error")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Internal server error", ""))
	}
}
