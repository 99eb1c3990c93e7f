package services

import (
	"fmt"
	"time"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/Mapsqc/ProjetLajoie/internal/repositories"
	"github.com/Mapsqc/ProjetLajoie/pkg/utils"
)

// DashboardService exposes the aggregate figures shown on the admin landing
// screen. All operations are pure reads over the entity store.
type DashboardService interface {
	GetStats() (*models.DashboardStats, error)
	GetTodayArrivals() ([]models.ArrivalDeparture, error)
	GetTodayDepartures() ([]models.ArrivalDeparture, error)
}

type dashboardService struct {
	dashboardRepo repositories.DashboardRepository
	now           func() time.Time
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{
		dashboardRepo: repo,
		now:           time.Now,
	}
}

func (s *dashboardService) GetStats() (*models.DashboardStats, error) {
	stats, err := s.dashboardRepo.GetStats(utils.Today(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return stats, nil
}

func (s *dashboardService) GetTodayArrivals() ([]models.ArrivalDeparture, error) {
	arrivals, err := s.dashboardRepo.GetArrivals(utils.Today(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's arrivals: %w", err)
	}
	return arrivals, nil
}

func (s *dashboardService) GetTodayDepartures() ([]models.ArrivalDeparture, error) {
	departures, err := s.dashboardRepo.GetDepartures(utils.Today(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's departures: %w", err)
	}
	return departures, nil
}
