package models

import "time"

// DashboardStats summarizes the current state of the campground for the
// admin landing screen.
type DashboardStats struct {
	ActiveSpots     int     `json:"active_spots"`
	TotalSpots      int     `json:"total_spots"`
	OccupancyRate   float64 `json:"occupancy_rate"` // Percent of active spots occupied today
	TodayArrivals   int     `json:"today_arrivals"`
	TodayDepartures int     `json:"today_departures"`
	MonthlyRevenue  float64 `json:"monthly_revenue"`
}

// ArrivalDeparture is a single line in the today-arrivals or today-departures
// list.
type ArrivalDeparture struct {
	ReservationID string            `json:"reservation_id"`
	CustomerName  string            `json:"customer_name"`
	SpotName      string            `json:"spot_name"`
	Date          time.Time         `json:"date"`
	Status        ReservationStatus `json:"status"`
}
