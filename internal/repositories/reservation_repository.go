package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/google/uuid"
)

// ReservationRepository defines the interface for reservation-related database operations.
type ReservationRepository interface {
	CreateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error)
	GetReservationByID(id string) (*models.Reservation, error) // Joins spot and customer details
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error)
	UpdateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error)
	UpdateReservationStatus(executor SQLExecutor, id string, status models.ReservationStatus) error
	// CheckSpotAvailability reports whether the spot is free of blocking
	// reservations over the half-open range [checkIn, checkOut).
	// excludeReservationID lets an in-place edit avoid colliding with itself.
	CheckSpotAvailability(executor SQLExecutor, spotID string, checkIn, checkOut time.Time, excludeReservationID *string) (bool, error)
	// ExpireStaleHolds cancels HOLD reservations created before the cutoff and
	// returns how many rows changed.
	ExpireStaleHolds(executor SQLExecutor, cutoff time.Time) (int64, error)
}

type reservationRepository struct {
	db *sql.DB
}

// NewReservationRepository creates a new instance of ReservationRepository.
func NewReservationRepository(db *sql.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

const selectReservationFields = `
	r.id, r.spot_id, r.customer_id, r.check_in, r.check_out, r.status, r.total_price,
	r.adults_count, r.children_count, r.created_at, r.updated_at,
	s.id, s.name, s.type, s.capacity, s.price_per_night, s.is_active,
	c.id, c.first_name, c.last_name, c.email, c.phone
`

const reservationJoins = `
	FROM reservations r
	JOIN spots s ON r.spot_id = s.id
	JOIN customers c ON r.customer_id = c.id
`

// scanReservationRow is a helper to scan a reservation row and its joined
// spot/customer summary. Used by GetReservationByID and GetReservations.
func scanReservationRow(row scanner, isList bool) (*models.Reservation, int, error) {
	var reservation models.Reservation
	var spot models.Spot
	var customer models.Customer
	var totalCount int

	scanDest := []interface{}{
		&reservation.ID, &reservation.SpotID, &reservation.CustomerID,
		&reservation.CheckIn, &reservation.CheckOut, &reservation.Status, &reservation.TotalPrice,
		&reservation.AdultsCount, &reservation.ChildrenCount,
		&reservation.CreatedAt, &reservation.UpdatedAt,
		&spot.ID, &spot.Name, &spot.Type, &spot.Capacity, &spot.PricePerNight, &spot.IsActive,
		&customer.ID, &customer.FirstName, &customer.LastName, &customer.Email, &customer.Phone,
	}
	if isList {
		scanDest = append(scanDest, &totalCount)
	}

	if err := row.Scan(scanDest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("%w: scanning reservation with details: %v", ErrDatabaseError, err)
	}

	reservation.Spot = &spot
	reservation.Customer = &customer
	return &reservation, totalCount, nil
}

func (r *reservationRepository) CreateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	if reservation.ID == "" {
		reservation.ID = uuid.NewString()
	}
	currentTime := time.Now()
	reservation.CreatedAt = currentTime
	reservation.UpdatedAt = currentTime

	query := `INSERT INTO reservations
	            (id, spot_id, customer_id, check_in, check_out, status, total_price,
	             adults_count, children_count, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          RETURNING created_at, updated_at`

	err := executor.QueryRow(query,
		reservation.ID, reservation.SpotID, reservation.CustomerID,
		reservation.CheckIn, reservation.CheckOut, reservation.Status, reservation.TotalPrice,
		reservation.AdultsCount, reservation.ChildrenCount,
		reservation.CreatedAt, reservation.UpdatedAt,
	).Scan(&reservation.CreatedAt, &reservation.UpdatedAt)

	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: creating reservation: %v", ErrDatabaseError, err)
	}
	return reservation, nil
}

func (r *reservationRepository) GetReservationByID(id string) (*models.Reservation, error) {
	query := "SELECT " + selectReservationFields + reservationJoins + " WHERE r.id = $1"
	reservation, _, err := scanReservationRow(r.db.QueryRow(query, id), false)
	return reservation, err
}

func (r *reservationRepository) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	reservations := []models.Reservation{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectReservationFields + ", COUNT(*) OVER() as total_count " + reservationJoins)

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.SpotID != nil {
		conditions = append(conditions, fmt.Sprintf("r.spot_id = $%d", argCount))
		args = append(args, *filters.SpotID)
		argCount++
	}
	if filters.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("r.customer_id = $%d", argCount))
		args = append(args, *filters.CustomerID)
		argCount++
	}
	if filters.Status != nil && *filters.Status != "" {
		conditions = append(conditions, fmt.Sprintf("r.status = $%d", argCount))
		args = append(args, *filters.Status)
		argCount++
	}
	if filters.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("r.check_out > $%d", argCount))
		args = append(args, *filters.DateFrom)
		argCount++
	}
	if filters.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("r.check_in < $%d", argCount))
		args = append(args, *filters.DateTo)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY r.check_in DESC")

	if filters.PageSize > 0 {
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", argCount))
		args = append(args, filters.PageSize)
		argCount++
		if filters.Page > 0 {
			queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", argCount))
			args = append(args, (filters.Page-1)*filters.PageSize)
		}
	}

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: querying reservations: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		reservation, scannedTotalCount, scanErr := scanReservationRow(rows, true)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		reservations = append(reservations, *reservation)
		totalCount = scannedTotalCount
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating reservation rows: %v", ErrDatabaseError, err)
	}
	if len(reservations) == 0 {
		totalCount = 0
	}
	return reservations, totalCount, nil
}

func (r *reservationRepository) UpdateReservation(executor SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	query := `UPDATE reservations SET
	            spot_id = $1, check_in = $2, check_out = $3, status = $4, total_price = $5,
	            adults_count = $6, children_count = $7, updated_at = $8
	          WHERE id = $9
	          RETURNING updated_at`
	reservation.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		reservation.SpotID, reservation.CheckIn, reservation.CheckOut,
		reservation.Status, reservation.TotalPrice,
		reservation.AdultsCount, reservation.ChildrenCount,
		reservation.UpdatedAt, reservation.ID,
	).Scan(&reservation.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: updating reservation ID %s: %v", ErrDatabaseError, reservation.ID, err)
	}
	return reservation, nil
}

func (r *reservationRepository) UpdateReservationStatus(executor SQLExecutor, id string, status models.ReservationStatus) error {
	result, err := executor.Exec(`UPDATE reservations SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: updating reservation ID %s status: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *reservationRepository) CheckSpotAvailability(executor SQLExecutor, spotID string, checkIn, checkOut time.Time, excludeReservationID *string) (bool, error) {
	var statusPlaceholders []string
	args := []interface{}{spotID, checkIn, checkOut}
	argIdx := 4 // Start after spotID, checkIn, checkOut

	for _, status := range models.BlockingStatuses {
		statusPlaceholders = append(statusPlaceholders, fmt.Sprintf("$%d", argIdx))
		args = append(args, status)
		argIdx++
	}

	// Half-open overlap: [a1,b1) and [a2,b2) overlap iff a1 < b2 AND a2 < b1.
	query := fmt.Sprintf(`SELECT COUNT(*) FROM reservations
	          WHERE spot_id = $1
	          AND status IN (%s)
	          AND check_in < $3 AND check_out > $2`, strings.Join(statusPlaceholders, ", "))

	if excludeReservationID != nil {
		query += fmt.Sprintf(" AND id != $%d", argIdx)
		args = append(args, *excludeReservationID)
	}

	var count int
	err := executor.QueryRow(query, args...).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("%w: checking spot availability: %v", ErrDatabaseError, err)
	}
	return count == 0, nil
}

func (r *reservationRepository) ExpireStaleHolds(executor SQLExecutor, cutoff time.Time) (int64, error) {
	result, err := executor.Exec(
		`UPDATE reservations SET status = $1, updated_at = $2 WHERE status = $3 AND created_at < $4`,
		models.ReservationStatusCancelled, time.Now(), models.ReservationStatusHold, cutoff)
	if err != nil {
		return 0, fmt.Errorf("%w: expiring stale holds: %v", ErrDatabaseError, err)
	}
	rowsAffected, _ := result.RowsAffected()
	return rowsAffected, nil
}
