package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Mapsqc/ProjetLajoie/internal/database"
	"github.com/Mapsqc/ProjetLajoie/internal/router"
	"github.com/Mapsqc/ProjetLajoie/pkg/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	utils.InitLogger()

	dbHost := utils.Getenv("DB_HOST", "localhost")
	dbPort := utils.Getenv("DB_PORT", "5432")
	dbUser := utils.Getenv("DB_USER", "lajoie_user")
	dbPassword := utils.Getenv("DB_PASSWORD", "lajoie_password")
	dbName := utils.Getenv("DB_NAME", "lajoie_db")
	dbSSLMode := utils.Getenv("DB_SSLMODE", "disable")

	if err := database.InitDB(dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	dbConn := database.GetDB()
	utils.LogInfo("Database connected", map[string]interface{}{"host": dbHost, "name": dbName})

	if utils.Getenv("DB_APPLY_SCHEMA", "true") == "true" {
		if err := database.ApplySchema(dbConn); err != nil {
			log.Fatalf("Failed to apply database schema: %v", err)
		}
		utils.LogInfo("Database schema applied")
	}
	if utils.Getenv("DB_SEED_SPOTS", "false") == "true" {
		if err := database.SeedSpots(dbConn); err != nil {
			log.Fatalf("Failed to seed spot catalog: %v", err)
		}
		utils.LogInfo("Spot catalog seeded")
	}

	engine := gin.Default()
	engine.Use(utils.GinLogger())

	corsAllowedOriginsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	var allowedOrigins []string
	if corsAllowedOriginsEnv != "" {
		allowedOrigins = strings.Split(corsAllowedOriginsEnv, ",")
	} else {
		allowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = allowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	router.Setup(engine, dbConn)

	startHoldSweeper(dbConn)

	port := utils.Getenv("PORT", "8080")
	utils.LogInfo("Server starting", map[string]interface{}{"port": port})

	if err := engine.Run(":" + port); err != nil {
		utils.LogError(err, "Failed to start server")
		log.Fatalf("Failed to start server: %v", err)
	}
}

// startHoldSweeper cancels holds older than HOLD_TTL_HOURS on a fixed
// interval. A TTL of 0 (the default) disables the sweep, in which case holds
// stay blocking until an operator confirms or cancels them.
func startHoldSweeper(db *sql.DB) {
	ttlHours, err := strconv.Atoi(utils.Getenv("HOLD_TTL_HOURS", "0"))
	if err != nil || ttlHours <= 0 {
		return
	}
	intervalMinutes, err := strconv.Atoi(utils.Getenv("HOLD_SWEEP_INTERVAL_MINUTES", "15"))
	if err != nil || intervalMinutes <= 0 {
		intervalMinutes = 15
	}

	ttl := time.Duration(ttlHours) * time.Hour
	reservationService := router.NewReservationService(db)
	utils.LogInfo("Hold sweeper enabled", map[string]interface{}{
		"ttl_hours": ttlHours, "interval_minutes": intervalMinutes,
	})

	go func() {
		ticker := time.NewTicker(time.Duration(intervalMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			expired, err := reservationService.ExpireStaleHolds(ttl)
			if err != nil {
				utils.LogError(err, "Hold sweep failed")
				continue
			}
			if expired > 0 {
				utils.LogInfo("Expired stale holds", map[string]interface{}{"count": expired})
			}
		}
	}()
}
