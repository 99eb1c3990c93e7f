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

// SpotRepository defines the interface for spot-related database operations.
type SpotRepository interface {
	CreateSpot(executor SQLExecutor, spot *models.Spot) (*models.Spot, error)
	GetSpotByID(id string) (*models.Spot, error)
	GetSpots(filters models.SpotFilters) ([]models.Spot, int, error)
	UpdateSpot(executor SQLExecutor, spot *models.Spot) (*models.Spot, error)
	SetSpotActive(executor SQLExecutor, id string, active bool) error
	DeleteSpot(executor SQLExecutor, id string) error
}

type spotRepository struct {
	db *sql.DB
}

// NewSpotRepository creates a new instance of SpotRepository.
func NewSpotRepository(db *sql.DB) SpotRepository {
	return &spotRepository{db: db}
}

const selectSpotFields = `id, name, type, capacity, price_per_night, has_electricity, has_water, has_sewer,
	size, is_active, description, length_ft, width_ft, sun_percentage, ground_type, amperage, notes,
	created_at, updated_at`

// scanSpot scans a single spot row. The extra destinations are appended for
// list queries carrying a COUNT(*) OVER() column.
func scanSpot(row scanner, extra ...interface{}) (*models.Spot, error) {
	var spot models.Spot
	var description, groundType, notes sql.NullString
	var lengthFt, widthFt, sunPercentage, amperage sql.NullInt32

	dest := []interface{}{
		&spot.ID, &spot.Name, &spot.Type, &spot.Capacity, &spot.PricePerNight,
		&spot.HasElectricity, &spot.HasWater, &spot.HasSewer,
		&spot.Size, &spot.IsActive, &description,
		&lengthFt, &widthFt, &sunPercentage, &groundType, &amperage, &notes,
		&spot.CreatedAt, &spot.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning spot: %v", ErrDatabaseError, err)
	}

	if description.Valid {
		spot.Description = &description.String
	}
	if groundType.Valid {
		spot.GroundType = &groundType.String
	}
	if notes.Valid {
		spot.Notes = &notes.String
	}
	if lengthFt.Valid {
		v := int(lengthFt.Int32)
		spot.LengthFt = &v
	}
	if widthFt.Valid {
		v := int(widthFt.Int32)
		spot.WidthFt = &v
	}
	if sunPercentage.Valid {
		v := int(sunPercentage.Int32)
		spot.SunPercentage = &v
	}
	if amperage.Valid {
		v := int(amperage.Int32)
		spot.Amperage = &v
	}
	return &spot, nil
}

func (r *spotRepository) CreateSpot(executor SQLExecutor, spot *models.Spot) (*models.Spot, error) {
	if spot.ID == "" {
		spot.ID = uuid.NewString()
	}
	currentTime := time.Now()
	spot.CreatedAt = currentTime
	spot.UpdatedAt = currentTime

	query := `INSERT INTO spots
	            (id, name, type, capacity, price_per_night, has_electricity, has_water, has_sewer,
	             size, is_active, description, length_ft, width_ft, sun_percentage, ground_type, amperage, notes,
	             created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	          RETURNING created_at, updated_at`

	err := executor.QueryRow(query,
		spot.ID, spot.Name, spot.Type, spot.Capacity, spot.PricePerNight,
		spot.HasElectricity, spot.HasWater, spot.HasSewer,
		spot.Size, spot.IsActive, spot.Description,
		spot.LengthFt, spot.WidthFt, spot.SunPercentage, spot.GroundType, spot.Amperage, spot.Notes,
		spot.CreatedAt, spot.UpdatedAt,
	).Scan(&spot.CreatedAt, &spot.UpdatedAt)

	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: creating spot: %v", ErrDatabaseError, err)
	}
	return spot, nil
}

func (r *spotRepository) GetSpotByID(id string) (*models.Spot, error) {
	query := "SELECT " + selectSpotFields + " FROM spots WHERE id = $1"
	return scanSpot(r.db.QueryRow(query, id))
}

func (r *spotRepository) GetSpots(filters models.SpotFilters) ([]models.Spot, int, error) {
	spots := []models.Spot{}
	var totalCount int

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + selectSpotFields + ", COUNT(*) OVER() as total_count FROM spots")

	var conditions []string
	var args []interface{}
	argCount := 1

	if filters.Search != nil && strings.TrimSpace(*filters.Search) != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argCount))
		args = append(args, "%"+strings.TrimSpace(*filters.Search)+"%")
		argCount++
	}
	if filters.Type != nil && *filters.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", argCount))
		args = append(args, *filters.Type)
		argCount++
	}
	if filters.GroundType != nil && *filters.GroundType != "" {
		conditions = append(conditions, fmt.Sprintf("ground_type = $%d", argCount))
		args = append(args, *filters.GroundType)
		argCount++
	}
	if filters.MinAmperage != nil {
		conditions = append(conditions, fmt.Sprintf("amperage >= $%d", argCount))
		args = append(args, *filters.MinAmperage)
		argCount++
	}
	if filters.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", argCount))
		args = append(args, *filters.Active)
		argCount++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY name")

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
		return nil, 0, fmt.Errorf("%w: querying spots: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		spot, scanErr := scanSpot(rows, &totalCount)
		if scanErr != nil {
			return nil, 0, scanErr
		}
		spots = append(spots, *spot)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%w: iterating spot rows: %v", ErrDatabaseError, err)
	}
	return spots, totalCount, nil
}

func (r *spotRepository) UpdateSpot(executor SQLExecutor, spot *models.Spot) (*models.Spot, error) {
	query := `UPDATE spots SET
	            name = $1, type = $2, capacity = $3, price_per_night = $4,
	            has_electricity = $5, has_water = $6, has_sewer = $7,
	            size = $8, is_active = $9, description = $10,
	            length_ft = $11, width_ft = $12, sun_percentage = $13, ground_type = $14, amperage = $15, notes = $16,
	            updated_at = $17
	          WHERE id = $18
	          RETURNING updated_at`
	spot.UpdatedAt = time.Now()

	err := executor.QueryRow(query,
		spot.Name, spot.Type, spot.Capacity, spot.PricePerNight,
		spot.HasElectricity, spot.HasWater, spot.HasSewer,
		spot.Size, spot.IsActive, spot.Description,
		spot.LengthFt, spot.WidthFt, spot.SunPercentage, spot.GroundType, spot.Amperage, spot.Notes,
		spot.UpdatedAt, spot.ID,
	).Scan(&spot.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: updating spot ID %s: %v", ErrDatabaseError, spot.ID, err)
	}
	return spot, nil
}

func (r *spotRepository) SetSpotActive(executor SQLExecutor, id string, active bool) error {
	result, err := executor.Exec(`UPDATE spots SET is_active = $1, updated_at = $2 WHERE id = $3`,
		active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("%w: setting spot ID %s active=%t: %v", ErrDatabaseError, id, active, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *spotRepository) DeleteSpot(executor SQLExecutor, id string) error {
	result, err := executor.Exec(`DELETE FROM spots WHERE id = $1`, id)
	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: deleting spot ID %s: %v", ErrDatabaseError, id, err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
