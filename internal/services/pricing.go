package services

import (
	"math"
	"time"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/Mapsqc/ProjetLajoie/pkg/utils"
)

// ComputePrice derives the total price of a stay: whole nights between
// check-in and check-out (half-open, so the check-out day is not billed)
// times the spot's nightly rate, rounded to cents. The rate is flat;
// occupancy-based surcharges would hook in here if ever needed.
func ComputePrice(spot *models.Spot, checkIn, checkOut time.Time) float64 {
	nights := utils.NightsBetween(checkIn, checkOut)
	return roundCurrency(float64(nights) * spot.PricePerNight)
}

func roundCurrency(amount float64) float64 {
	return math.Round(amount*100) / 100
}
