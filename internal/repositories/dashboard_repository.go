package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
)

// DashboardRepository aggregates reservation and spot data for the admin
// dashboard. All methods are pure reads.
type DashboardRepository interface {
	GetStats(today time.Time) (*models.DashboardStats, error)
	GetArrivals(date time.Time) ([]models.ArrivalDeparture, error)
	GetDepartures(date time.Time) ([]models.ArrivalDeparture, error)
}

type dashboardRepository struct {
	db *sql.DB
}

// NewDashboardRepository creates a new instance of DashboardRepository.
func NewDashboardRepository(db *sql.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

func (r *dashboardRepository) GetStats(today time.Time) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	err := r.db.QueryRow(
		`SELECT COUNT(*) FILTER (WHERE is_active), COUNT(*) FROM spots`,
	).Scan(&stats.ActiveSpots, &stats.TotalSpots)
	if err != nil {
		return nil, fmt.Errorf("%w: counting spots: %v", ErrDatabaseError, err)
	}

	var occupiedToday int
	err = r.db.QueryRow(
		`SELECT COUNT(DISTINCT spot_id) FROM reservations
		 WHERE status IN ($1, $2, $3) AND check_in <= $4 AND check_out > $4`,
		models.ReservationStatusHold, models.ReservationStatusConfirmed, models.ReservationStatusCheckedIn,
		today,
	).Scan(&occupiedToday)
	if err != nil {
		return nil, fmt.Errorf("%w: counting occupied spots: %v", ErrDatabaseError, err)
	}
	if stats.ActiveSpots > 0 {
		stats.OccupancyRate = float64(occupiedToday) / float64(stats.ActiveSpots) * 100
	}

	err = r.db.QueryRow(
		`SELECT
		   COUNT(*) FILTER (WHERE check_in = $3 AND status IN ($1, $2)),
		   COUNT(*) FILTER (WHERE check_out = $3 AND status IN ($2, $4))
		 FROM reservations`,
		models.ReservationStatusConfirmed, models.ReservationStatusCheckedIn,
		today, models.ReservationStatusCheckedOut,
	).Scan(&stats.TodayArrivals, &stats.TodayDepartures)
	if err != nil {
		return nil, fmt.Errorf("%w: counting arrivals/departures: %v", ErrDatabaseError, err)
	}

	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	err = r.db.QueryRow(
		`SELECT COALESCE(SUM(total_price), 0) FROM reservations
		 WHERE status != $1 AND check_in >= $2 AND check_in < $3`,
		models.ReservationStatusCancelled, monthStart, monthEnd,
	).Scan(&stats.MonthlyRevenue)
	if err != nil {
		return nil, fmt.Errorf("%w: computing monthly revenue: %v", ErrDatabaseError, err)
	}

	return stats, nil
}

func (r *dashboardRepository) GetArrivals(date time.Time) ([]models.ArrivalDeparture, error) {
	query := `SELECT r.id, c.first_name || ' ' || c.last_name, s.name, r.check_in, r.status
	          FROM reservations r
	          JOIN customers c ON r.customer_id = c.id
	          JOIN spots s ON r.spot_id = s.id
	          WHERE r.check_in = $1 AND r.status IN ($2, $3)
	          ORDER BY s.name`
	return r.listMovements(query, date,
		models.ReservationStatusConfirmed, models.ReservationStatusCheckedIn)
}

func (r *dashboardRepository) GetDepartures(date time.Time) ([]models.ArrivalDeparture, error) {
	query := `SELECT r.id, c.first_name || ' ' || c.last_name, s.name, r.check_out, r.status
	          FROM reservations r
	          JOIN customers c ON r.customer_id = c.id
	          JOIN spots s ON r.spot_id = s.id
	          WHERE r.check_out = $1 AND r.status IN ($2, $3)
	          ORDER BY s.name`
	return r.listMovements(query, date,
		models.ReservationStatusCheckedIn, models.ReservationStatusCheckedOut)
}

func (r *dashboardRepository) listMovements(query string, args ...interface{}) ([]models.ArrivalDeparture, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying arrivals/departures: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	movements := []models.ArrivalDeparture{}
	for rows.Next() {
		var m models.ArrivalDeparture
		if err := rows.Scan(&m.ReservationID, &m.CustomerName, &m.SpotName, &m.Date, &m.Status); err != nil {
			return nil, fmt.Errorf("%w: scanning arrival/departure row: %v", ErrDatabaseError, err)
		}
		movements = append(movements, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating arrival/departure rows: %v", ErrDatabaseError, err)
	}
	return movements, nil
}
