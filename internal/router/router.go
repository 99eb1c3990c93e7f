package router

import (
	"database/sql"

	"github.com/Mapsqc/ProjetLajoie/internal/handlers"
	"github.com/Mapsqc/ProjetLajoie/internal/repositories"
	"github.com/Mapsqc/ProjetLajoie/internal/services"
	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	customerRepo := repositories.NewCustomerRepository(db)
	spotRepo := repositories.NewSpotRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	noteRepo := repositories.NewNoteRepository(db)
	dashboardRepo := repositories.NewDashboardRepository(db)
	txRunner := repositories.NewTxRunner(db)

	// Initialize Services
	customerService := services.NewCustomerService(customerRepo, db)
	spotService := services.NewSpotService(spotRepo, db)
	reservationService := services.NewReservationService(reservationRepo, spotRepo, customerRepo, noteRepo, txRunner, db)
	dashboardService := services.NewDashboardService(dashboardRepo)

	// Initialize Handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	spotHandler := handlers.NewSpotHandler(spotService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	apiV1 := engine.Group("/api/v1")
	{
		SetupCustomerRoutes(apiV1, customerHandler)
		SetupSpotRoutes(apiV1, spotHandler, reservationHandler)
		SetupReservationRoutes(apiV1, reservationHandler)
		SetupDashboardRoutes(apiV1, dashboardHandler)
	}
}

// NewReservationService builds the reservation service from a raw DB handle.
// Exposed for background jobs (hold expiry) that live outside the router.
func NewReservationService(db *sql.DB) services.ReservationService {
	return services.NewReservationService(
		repositories.NewReservationRepository(db),
		repositories.NewSpotRepository(db),
		repositories.NewCustomerRepository(db),
		repositories.NewNoteRepository(db),
		repositories.NewTxRunner(db),
		db,
	)
}
