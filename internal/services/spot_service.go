package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/Mapsqc/ProjetLajoie/internal/repositories"
)

// --- Custom Service Errors for Spot ---
var (
	ErrSpotValidation = errors.New("spot data validation error")
	ErrSpotNameExists = errors.New("spot name already exists")
	ErrSpotInUse      = errors.New("spot cannot be deleted while reservations reference it")
)

// --- Spot DTOs ---
type CreateSpotRequest struct {
	Name           string  `json:"name" binding:"required"`
	Type           string  `json:"type" binding:"required"` // TENT | RV | CABIN
	Capacity       int     `json:"capacity" binding:"required"`
	PricePerNight  float64 `json:"price_per_night"`
	HasElectricity bool    `json:"has_electricity"`
	HasWater       bool    `json:"has_water"`
	HasSewer       bool    `json:"has_sewer"`
	Size           int     `json:"size"`
	Description    *string `json:"description"`
	LengthFt       *int    `json:"length_ft"`
	WidthFt        *int    `json:"width_ft"`
	SunPercentage  *int    `json:"sun_percentage"`
	GroundType     *string `json:"ground_type"`
	Amperage       *int    `json:"amperage"`
	Notes          *string `json:"notes"`
}

type UpdateSpotRequest struct {
	Name           *string  `json:"name"`
	Type           *string  `json:"type"`
	Capacity       *int     `json:"capacity"`
	PricePerNight  *float64 `json:"price_per_night"`
	HasElectricity *bool    `json:"has_electricity"`
	HasWater       *bool    `json:"has_water"`
	HasSewer       *bool    `json:"has_sewer"`
	Size           *int     `json:"size"`
	Description    *string  `json:"description"`
	LengthFt       *int     `json:"length_ft"`
	WidthFt        *int     `json:"width_ft"`
	SunPercentage  *int     `json:"sun_percentage"`
	GroundType     *string  `json:"ground_type"`
	Amperage       *int     `json:"amperage"`
	Notes          *string  `json:"notes"`
}

// --- SpotService Interface ---
type SpotService interface {
	CreateSpot(req CreateSpotRequest) (*models.Spot, error)
	GetSpotByID(spotID string) (*models.Spot, error)
	GetSpots(filters models.SpotFilters) ([]models.Spot, int, error)
	UpdateSpot(spotID string, req UpdateSpotRequest) (*models.Spot, error)
	ToggleSpotActive(spotID string) (*models.Spot, error)
	DeleteSpot(spotID string) error
}

// --- spotService Implementation ---
type spotService struct {
	spotRepo repositories.SpotRepository
	db       repositories.SQLExecutor
}

// NewSpotService creates a new instance of SpotService.
func NewSpotService(repo repositories.SpotRepository, db repositories.SQLExecutor) SpotService {
	return &spotService{
		spotRepo: repo,
		db:       db,
	}
}

func validateSpotFields(spotType string, capacity int, pricePerNight float64, sunPercentage *int) error {
	if !models.IsValidSpotType(spotType) {
		return fmt.Errorf("%w: invalid type '%s', expected TENT, RV or CABIN", ErrSpotValidation, spotType)
	}
	if capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1", ErrSpotValidation)
	}
	if pricePerNight < 0 {
		return fmt.Errorf("%w: nightly price cannot be negative", ErrSpotValidation)
	}
	if sunPercentage != nil && (*sunPercentage < 0 || *sunPercentage > 100) {
		return fmt.Errorf("%w: sun percentage must be between 0 and 100", ErrSpotValidation)
	}
	return nil
}

func (s *spotService) CreateSpot(req CreateSpotRequest) (*models.Spot, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrSpotValidation)
	}
	if err := validateSpotFields(req.Type, req.Capacity, req.PricePerNight, req.SunPercentage); err != nil {
		return nil, err
	}

	size := req.Size
	if size <= 0 {
		size = 1
	}

	spot := &models.Spot{
		Name:           strings.TrimSpace(req.Name),
		Type:           models.SpotType(req.Type),
		Capacity:       req.Capacity,
		PricePerNight:  req.PricePerNight,
		HasElectricity: req.HasElectricity,
		HasWater:       req.HasWater,
		HasSewer:       req.HasSewer,
		Size:           size,
		IsActive:       true,
		Description:    req.Description,
		LengthFt:       req.LengthFt,
		WidthFt:        req.WidthFt,
		SunPercentage:  req.SunPercentage,
		GroundType:     req.GroundType,
		Amperage:       req.Amperage,
		Notes:          req.Notes,
	}

	created, err := s.spotRepo.CreateSpot(s.db, spot)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrSpotNameExists
		}
		return nil, fmt.Errorf("failed to create spot in repository: %w", err)
	}
	return created, nil
}

func (s *spotService) GetSpotByID(spotID string) (*models.Spot, error) {
	spot, err := s.spotRepo.GetSpotByID(spotID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, fmt.Errorf("failed to get spot by ID: %w", err)
	}
	return spot, nil
}

func (s *spotService) GetSpots(filters models.SpotFilters) ([]models.Spot, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 100
	}
	if filters.Type != nil && *filters.Type != "" && !models.IsValidSpotType(*filters.Type) {
		return nil, 0, fmt.Errorf("%w: invalid type '%s'", ErrSpotValidation, *filters.Type)
	}

	spots, totalCount, err := s.spotRepo.GetSpots(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get spots: %w", err)
	}
	return spots, totalCount, nil
}

func (s *spotService) UpdateSpot(spotID string, req UpdateSpotRequest) (*models.Spot, error) {
	spot, err := s.GetSpotByID(spotID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty if provided", ErrSpotValidation)
		}
		spot.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		spot.Type = models.SpotType(*req.Type)
	}
	if req.Capacity != nil {
		spot.Capacity = *req.Capacity
	}
	if req.PricePerNight != nil {
		spot.PricePerNight = *req.PricePerNight
	}
	if req.HasElectricity != nil {
		spot.HasElectricity = *req.HasElectricity
	}
	if req.HasWater != nil {
		spot.HasWater = *req.HasWater
	}
	if req.HasSewer != nil {
		spot.HasSewer = *req.HasSewer
	}
	if req.Size != nil {
		spot.Size = *req.Size
	}
	if req.Description != nil {
		spot.Description = req.Description
	}
	if req.LengthFt != nil {
		spot.LengthFt = req.LengthFt
	}
	if req.WidthFt != nil {
		spot.WidthFt = req.WidthFt
	}
	if req.SunPercentage != nil {
		spot.SunPercentage = req.SunPercentage
	}
	if req.GroundType != nil {
		spot.GroundType = req.GroundType
	}
	if req.Amperage != nil {
		spot.Amperage = req.Amperage
	}
	if req.Notes != nil {
		spot.Notes = req.Notes
	}

	if err := validateSpotFields(string(spot.Type), spot.Capacity, spot.PricePerNight, spot.SunPercentage); err != nil {
		return nil, err
	}

	updated, err := s.spotRepo.UpdateSpot(s.db, spot)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSpotNotFound
		}
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrSpotNameExists
		}
		return nil, fmt.Errorf("failed to update spot in repository: %w", err)
	}
	return updated, nil
}

// ToggleSpotActive flips the soft-deactivation flag. Deactivation does not
// touch existing reservations; it only stops new ones.
func (s *spotService) ToggleSpotActive(spotID string) (*models.Spot, error) {
	spot, err := s.GetSpotByID(spotID)
	if err != nil {
		return nil, err
	}
	if err := s.spotRepo.SetSpotActive(s.db, spotID, !spot.IsActive); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrSpotNotFound
		}
		return nil, fmt.Errorf("failed to toggle spot active flag: %w", err)
	}
	return s.GetSpotByID(spotID)
}

func (s *spotService) DeleteSpot(spotID string) error {
	err := s.spotRepo.DeleteSpot(s.db, spotID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrSpotNotFound
		}
		if errors.Is(err, repositories.ErrForeignKey) {
			return ErrSpotInUse
		}
		return fmt.Errorf("failed to delete spot: %w", err)
	}
	return nil
}
