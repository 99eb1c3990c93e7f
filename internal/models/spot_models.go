package models

import "time"

// SpotType defines the type for spot categories.
type SpotType string

const (
	SpotTypeTent  SpotType = "TENT"
	SpotTypeRV    SpotType = "RV"
	SpotTypeCabin SpotType = "CABIN"
)

// IsValidSpotType checks if the provided type string is a valid SpotType.
func IsValidSpotType(spotType string) bool {
	switch SpotType(spotType) {
	case SpotTypeTent, SpotTypeRV, SpotTypeCabin:
		return true
	default:
		return false
	}
}

// Spot represents a bookable physical unit: a tent site, RV site, or cabin.
// Spots are soft-deactivated via IsActive and never hard-deleted while
// reservations reference them.
type Spot struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name" binding:"required"`
	Type           SpotType  `json:"type" db:"type"`
	Capacity       int       `json:"capacity" db:"capacity"`
	PricePerNight  float64   `json:"price_per_night" db:"price_per_night"`
	HasElectricity bool      `json:"has_electricity" db:"has_electricity"`
	HasWater       bool      `json:"has_water" db:"has_water"`
	HasSewer       bool      `json:"has_sewer" db:"has_sewer"`
	Size           int       `json:"size" db:"size"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	Description    *string   `json:"description,omitempty" db:"description"`
	LengthFt       *int      `json:"length_ft,omitempty" db:"length_ft"`
	WidthFt        *int      `json:"width_ft,omitempty" db:"width_ft"`
	SunPercentage  *int      `json:"sun_percentage,omitempty" db:"sun_percentage"`
	GroundType     *string   `json:"ground_type,omitempty" db:"ground_type"`
	Amperage       *int      `json:"amperage,omitempty" db:"amperage"`
	Notes          *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// SpotFilters defines the available filters for querying spots.
type SpotFilters struct {
	Search      *string `form:"search"`       // Substring match on name
	Type        *string `form:"type"`         // TENT | RV | CABIN
	GroundType  *string `form:"ground_type"`
	MinAmperage *int    `form:"min_amperage"`
	Active      *bool   `form:"active"`
	Page        int     `form:"page"`
	PageSize    int     `form:"page_size"`
}
