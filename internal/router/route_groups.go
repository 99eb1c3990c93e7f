package router

import (
	"github.com/Mapsqc/ProjetLajoie/internal/handlers"
	"github.com/gin-gonic/gin"
)

// SetupCustomerRoutes sets up the customer routes.
func SetupCustomerRoutes(apiGroup *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	customerRoutes := apiGroup.Group("/customers")
	{
		customerRoutes.POST("", customerHandler.CreateCustomer)
		customerRoutes.GET("", customerHandler.GetCustomers)
		customerRoutes.GET("/:id", customerHandler.GetCustomerByID)
		customerRoutes.PUT("/:id", customerHandler.UpdateCustomer)
		customerRoutes.DELETE("/:id", customerHandler.DeleteCustomer)
	}
}

// SetupSpotRoutes sets up the spot catalog routes. Availability is served by
// the reservation handler since the reservation engine owns the overlap rules.
func SetupSpotRoutes(apiGroup *gin.RouterGroup, spotHandler *handlers.SpotHandler, reservationHandler *handlers.ReservationHandler) {
	spotRoutes := apiGroup.Group("/spots")
	{
		spotRoutes.POST("", spotHandler.CreateSpot)
		spotRoutes.GET("", spotHandler.GetSpots)
		spotRoutes.GET("/:id", spotHandler.GetSpotByID)
		spotRoutes.PATCH("/:id", spotHandler.UpdateSpot)
		spotRoutes.POST("/:id/toggle-active", spotHandler.ToggleSpotActive)
		spotRoutes.DELETE("/:id", spotHandler.DeleteSpot)
		spotRoutes.GET("/:id/availability", reservationHandler.GetSpotAvailability)
	}
}

// SetupReservationRoutes sets up the reservation lifecycle routes.
func SetupReservationRoutes(apiGroup *gin.RouterGroup, reservationHandler *handlers.ReservationHandler) {
	reservationRoutes := apiGroup.Group("/reservations")
	{
		reservationRoutes.POST("", reservationHandler.CreateReservation)
		reservationRoutes.GET("", reservationHandler.GetReservations)
		reservationRoutes.GET("/:id", reservationHandler.GetReservationByID)
		reservationRoutes.PATCH("/:id/dates", reservationHandler.ModifyDates)
		reservationRoutes.PATCH("/:id/spot", reservationHandler.ReassignSpot)
		reservationRoutes.POST("/:id/confirm", reservationHandler.ConfirmReservation)
		reservationRoutes.POST("/:id/cancel", reservationHandler.CancelReservation)
		reservationRoutes.POST("/:id/check-in", reservationHandler.CheckInReservation)
		reservationRoutes.POST("/:id/check-out", reservationHandler.CheckOutReservation)
		reservationRoutes.POST("/:id/notes", reservationHandler.AddNote)
		reservationRoutes.GET("/:id/notes", reservationHandler.GetNotes)
	}
}

// SetupDashboardRoutes sets up the dashboard routes.
func SetupDashboardRoutes(apiGroup *gin.RouterGroup, dashboardHandler *handlers.DashboardHandler) {
	dashboardRoutes := apiGroup.Group("/dashboard")
	{
		dashboardRoutes.GET("/stats", dashboardHandler.GetStats)
		dashboardRoutes.GET("/arrivals", dashboardHandler.GetTodayArrivals)
		dashboardRoutes.GET("/departures", dashboardHandler.GetTodayDepartures)
	}
}
