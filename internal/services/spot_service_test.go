package services

import (
	"testing"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/Mapsqc/ProjetLajoie/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSpotService() (*fakeSpotRepo, SpotService) {
	repo := &fakeSpotRepo{spots: make(map[string]*models.Spot)}
	return repo, NewSpotService(repo, nil)
}

func TestCreateSpot(t *testing.T) {
	_, svc := newSpotService()

	created, err := svc.CreateSpot(CreateSpotRequest{
		Name:           "Terrain 14",
		Type:           "RV",
		Capacity:       6,
		PricePerNight:  55.00,
		HasElectricity: true,
		HasWater:       true,
		HasSewer:       true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.IsActive) // new spots are bookable
	assert.Equal(t, 1, created.Size) // defaulted
	assert.Equal(t, models.SpotTypeRV, created.Type)
}

func TestCreateSpotValidation(t *testing.T) {
	_, svc := newSpotService()

	badSun := 150
	cases := []CreateSpotRequest{
		{Name: "", Type: "RV", Capacity: 4},
		{Name: "Terrain 1", Type: "YURT", Capacity: 4},
		{Name: "Terrain 1", Type: "TENT", Capacity: 0},
		{Name: "Terrain 1", Type: "TENT", Capacity: 4, PricePerNight: -1},
		{Name: "Terrain 1", Type: "TENT", Capacity: 4, SunPercentage: &badSun},
	}
	for i, req := range cases {
		_, err := svc.CreateSpot(req)
		assert.ErrorIs(t, err, ErrSpotValidation, "case %d", i)
	}
}

func TestToggleSpotActive(t *testing.T) {
	_, svc := newSpotService()

	created, err := svc.CreateSpot(CreateSpotRequest{Name: "Terrain 14", Type: "RV", Capacity: 6})
	require.NoError(t, err)

	toggled, err := svc.ToggleSpotActive(created.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	toggled, err = svc.ToggleSpotActive(created.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsActive)
}

func TestUpdateSpotRevalidates(t *testing.T) {
	_, svc := newSpotService()

	created, err := svc.CreateSpot(CreateSpotRequest{Name: "Terrain 14", Type: "RV", Capacity: 6})
	require.NoError(t, err)

	badType := "IGLOO"
	_, err = svc.UpdateSpot(created.ID, UpdateSpotRequest{Type: &badType})
	assert.ErrorIs(t, err, ErrSpotValidation)

	price := 60.00
	updated, err := svc.UpdateSpot(created.ID, UpdateSpotRequest{PricePerNight: &price})
	require.NoError(t, err)
	assert.Equal(t, 60.00, updated.PricePerNight)
}

func TestDeleteSpotInUse(t *testing.T) {
	repo, svc := newSpotService()

	created, err := svc.CreateSpot(CreateSpotRequest{Name: "Terrain 14", Type: "RV", Capacity: 6})
	require.NoError(t, err)

	repo.deleteErr = repositories.ErrForeignKey
	assert.ErrorIs(t, svc.DeleteSpot(created.ID), ErrSpotInUse)

	assert.ErrorIs(t, svc.DeleteSpot("spot-999"), ErrSpotNotFound)
}
