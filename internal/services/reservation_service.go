package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/Mapsqc/ProjetLajoie/internal/repositories"
	"github.com/Mapsqc/ProjetLajoie/pkg/utils"
)

// --- Custom Service Errors for Reservation ---
var (
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrSpotNotFound          = errors.New("spot not found")
	ErrCustomerNotFound      = errors.New("customer not found")
	ErrInvalidDateRange      = errors.New("check-in date must be before check-out date")
	ErrSpotInactive          = errors.New("spot is not active")
	ErrSpotUnavailable       = errors.New("spot is not available for the requested dates")
	ErrInvalidTransition     = errors.New("illegal reservation status transition")
	ErrInvalidState          = errors.New("operation not permitted in the reservation's current status")
	ErrReservationValidation = errors.New("reservation data validation error")
	ErrEmptyNoteText         = errors.New("note text cannot be empty")
)

// --- Reservation DTOs ---
type CreateReservationRequest struct {
	SpotID        string `json:"spot_id" binding:"required"`
	CustomerID    string `json:"customer_id" binding:"required"`
	CheckIn       string `json:"check_in" binding:"required"`  // YYYY-MM-DD
	CheckOut      string `json:"check_out" binding:"required"` // YYYY-MM-DD, exclusive
	AdultsCount   int    `json:"adults_count" binding:"required"`
	ChildrenCount int    `json:"children_count"`
}

type ModifyDatesRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type ReassignSpotRequest struct {
	SpotID string `json:"spot_id" binding:"required"`
}

type CheckOutRequest struct {
	// CheckOut optionally adjusts the departure date as part of the
	// check-out transition. Nil keeps the reservation's current date.
	CheckOut *string `json:"check_out"`
}

type AddNoteRequest struct {
	Text   string `json:"text" binding:"required"`
	Author string `json:"author"`
}

// --- ReservationService Interface ---
type ReservationService interface {
	CreateReservation(req CreateReservationRequest) (*models.Reservation, error)
	GetReservationByID(reservationID string) (*models.Reservation, error)
	GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error)
	ModifyDates(reservationID string, req ModifyDatesRequest) (*models.Reservation, error)
	ReassignSpot(reservationID string, req ReassignSpotRequest) (*models.Reservation, error)
	ConfirmReservation(reservationID string) (*models.Reservation, error)
	CancelReservation(reservationID string) (*models.Reservation, error)
	CheckInReservation(reservationID string) (*models.Reservation, error)
	CheckOutReservation(reservationID string, req CheckOutRequest) (*models.Reservation, error)
	IsAvailable(spotID, checkIn, checkOut string, excludeReservationID *string) (bool, error)
	AddNote(reservationID string, req AddNoteRequest) (*models.ReservationNote, error)
	GetNotes(reservationID string) ([]models.ReservationNote, error)
	ExpireStaleHolds(ttl time.Duration) (int64, error)
}

// --- reservationService Implementation ---
type reservationService struct {
	reservationRepo repositories.ReservationRepository
	spotRepo        repositories.SpotRepository
	customerRepo    repositories.CustomerRepository
	noteRepo        repositories.NoteRepository
	txRunner        repositories.TxRunner
	db              repositories.SQLExecutor
	locks           *spotLocks
	now             func() time.Time
}

// NewReservationService creates a new instance of ReservationService.
func NewReservationService(
	rr repositories.ReservationRepository,
	sr repositories.SpotRepository,
	cr repositories.CustomerRepository,
	nr repositories.NoteRepository,
	txRunner repositories.TxRunner,
	db repositories.SQLExecutor,
) ReservationService {
	return &reservationService{
		reservationRepo: rr,
		spotRepo:        sr,
		customerRepo:    cr,
		noteRepo:        nr,
		txRunner:        txRunner,
		db:              db,
		locks:           newSpotLocks(),
		now:             time.Now,
	}
}

// parseStayDates parses and validates a check-in/check-out pair.
// The range is half-open: check-out day is excluded.
func parseStayDates(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := utils.ParseDate(checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("check_in: %w: %v", ErrInvalidDateRange, err)
	}
	checkOut, err := utils.ParseDate(checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("check_out: %w: %v", ErrInvalidDateRange, err)
	}
	if !checkIn.Before(checkOut) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %s >= %s", ErrInvalidDateRange,
			checkInStr, checkOutStr)
	}
	return checkIn, checkOut, nil
}

// getSpotForBooking fetches a spot and verifies it can take new bookings.
func (s *reservationService) getSpotForBooking(spotID string) (*models.Spot, error) {
	spot, err := s.spotRepo.GetSpotByID(spotID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrSpotNotFound, spotID)
		}
		return nil, fmt.Errorf("failed to validate spot for reservation: %w", err)
	}
	if !spot.IsActive {
		return nil, fmt.Errorf("%w: ID %s", ErrSpotInactive, spotID)
	}
	return spot, nil
}

func (s *reservationService) CreateReservation(req CreateReservationRequest) (*models.Reservation, error) {
	checkIn, checkOut, err := parseStayDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	if req.AdultsCount < 1 {
		return nil, fmt.Errorf("%w: at least 1 adult is required", ErrReservationValidation)
	}
	if req.ChildrenCount < 0 {
		return nil, fmt.Errorf("%w: children count cannot be negative", ErrReservationValidation)
	}

	if _, err := s.customerRepo.GetCustomerByID(req.CustomerID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: ID %s", ErrCustomerNotFound, req.CustomerID)
		}
		return nil, fmt.Errorf("failed to validate customer for reservation: %w", err)
	}

	spot, err := s.getSpotForBooking(req.SpotID)
	if err != nil {
		return nil, err
	}

	// The overlap check and the insert must not interleave with another
	// booking of the same spot. The lock serializes same-spot callers in
	// this process; the serializable transaction covers the store.
	unlock := s.locks.lock(req.SpotID)
	defer unlock()

	var created *models.Reservation
	err = s.txRunner.RunSerializable(func(tx repositories.SQLExecutor) error {
		available, availErr := s.reservationRepo.CheckSpotAvailability(tx, req.SpotID, checkIn, checkOut, nil)
		if availErr != nil {
			return fmt.Errorf("failed to check spot availability: %w", availErr)
		}
		if !available {
			return ErrSpotUnavailable
		}

		reservation := &models.Reservation{
			SpotID:        req.SpotID,
			CustomerID:    req.CustomerID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Status:        models.ReservationStatusHold,
			TotalPrice:    ComputePrice(spot, checkIn, checkOut),
			AdultsCount:   req.AdultsCount,
			ChildrenCount: req.ChildrenCount,
		}
		var createErr error
		created, createErr = s.reservationRepo.CreateReservation(tx, reservation)
		if createErr != nil {
			return fmt.Errorf("failed to create reservation in repository: %w", createErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetReservationByID(created.ID) // Fetch with joins and notes
}

func (s *reservationService) GetReservationByID(reservationID string) (*models.Reservation, error) {
	reservation, err := s.reservationRepo.GetReservationByID(reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to get reservation by ID: %w", err)
	}
	notes, err := s.noteRepo.GetNotesByReservation(reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reservation notes: %w", err)
	}
	reservation.Notes = notes
	return reservation, nil
}

func (s *reservationService) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	if filters.Page <= 0 {
		filters.Page = 1
	}
	if filters.PageSize <= 0 {
		filters.PageSize = 50
	}
	if filters.Status != nil && *filters.Status != "" && !models.IsValidReservationStatus(*filters.Status) {
		return nil, 0, fmt.Errorf("%w: invalid status '%s'", ErrReservationValidation, *filters.Status)
	}

	reservations, totalCount, err := s.reservationRepo.GetReservations(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get reservations: %w", err)
	}
	return reservations, totalCount, nil
}

func (s *reservationService) ModifyDates(reservationID string, req ModifyDatesRequest) (*models.Reservation, error) {
	newCheckIn, newCheckOut, err := parseStayDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	reservation, err := s.GetReservationByID(reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != models.ReservationStatusHold && reservation.Status != models.ReservationStatusConfirmed {
		return nil, fmt.Errorf("%w: dates can only change while HOLD or CONFIRMED, reservation is %s",
			ErrInvalidState, reservation.Status)
	}

	spot, err := s.getSpotForBooking(reservation.SpotID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.lock(reservation.SpotID)
	defer unlock()

	err = s.txRunner.RunSerializable(func(tx repositories.SQLExecutor) error {
		available, availErr := s.reservationRepo.CheckSpotAvailability(tx, reservation.SpotID, newCheckIn, newCheckOut, &reservationID)
		if availErr != nil {
			return fmt.Errorf("failed to check spot availability for date change: %w", availErr)
		}
		if !available {
			return ErrSpotUnavailable
		}

		reservation.CheckIn = newCheckIn
		reservation.CheckOut = newCheckOut
		reservation.TotalPrice = ComputePrice(spot, newCheckIn, newCheckOut)
		_, updateErr := s.reservationRepo.UpdateReservation(tx, reservation)
		if updateErr != nil {
			return fmt.Errorf("failed to update reservation dates: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetReservationByID(reservationID)
}

func (s *reservationService) ReassignSpot(reservationID string, req ReassignSpotRequest) (*models.Reservation, error) {
	reservation, err := s.GetReservationByID(reservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status != models.ReservationStatusHold && reservation.Status != models.ReservationStatusConfirmed {
		return nil, fmt.Errorf("%w: spot can only change while HOLD or CONFIRMED, reservation is %s",
			ErrInvalidState, reservation.Status)
	}

	newSpot, err := s.getSpotForBooking(req.SpotID)
	if err != nil {
		return nil, err
	}

	// Only the target spot gains a blocking range; the old spot is freed by
	// the same write, so locking the target is sufficient.
	unlock := s.locks.lock(req.SpotID)
	defer unlock()

	err = s.txRunner.RunSerializable(func(tx repositories.SQLExecutor) error {
		available, availErr := s.reservationRepo.CheckSpotAvailability(tx, req.SpotID, reservation.CheckIn, reservation.CheckOut, &reservationID)
		if availErr != nil {
			return fmt.Errorf("failed to check target spot availability: %w", availErr)
		}
		if !available {
			return ErrSpotUnavailable
		}

		reservation.SpotID = req.SpotID
		reservation.TotalPrice = ComputePrice(newSpot, reservation.CheckIn, reservation.CheckOut)
		_, updateErr := s.reservationRepo.UpdateReservation(tx, reservation)
		if updateErr != nil {
			return fmt.Errorf("failed to reassign reservation spot: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetReservationByID(reservationID)
}

// changeStatus validates and applies a status transition. When the new status
// stays in the blocking set and the dates are unchanged no availability
// re-check is needed: the reservation already holds its range.
func (s *reservationService) changeStatus(reservationID string, target models.ReservationStatus) (*models.Reservation, error) {
	reservation, err := s.GetReservationByID(reservationID)
	if err != nil {
		return nil, err
	}

	if !reservation.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, reservation.Status, target)
	}

	if err := s.reservationRepo.UpdateReservationStatus(s.db, reservationID, target); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to update reservation status: %w", err)
	}
	return s.GetReservationByID(reservationID)
}

func (s *reservationService) ConfirmReservation(reservationID string) (*models.Reservation, error) {
	return s.changeStatus(reservationID, models.ReservationStatusConfirmed)
}

func (s *reservationService) CancelReservation(reservationID string) (*models.Reservation, error) {
	return s.changeStatus(reservationID, models.ReservationStatusCancelled)
}

func (s *reservationService) CheckInReservation(reservationID string) (*models.Reservation, error) {
	reservation, err := s.GetReservationByID(reservationID)
	if err != nil {
		return nil, err
	}
	// Guest arrival is only permitted on or after the check-in date.
	if utils.Today(s.now()).Before(reservation.CheckIn) {
		return nil, fmt.Errorf("%w: check-in is only permitted on or after %s",
			ErrInvalidState, reservation.CheckIn.Format(utils.DateLayout))
	}
	return s.changeStatus(reservationID, models.ReservationStatusCheckedIn)
}

func (s *reservationService) CheckOutReservation(reservationID string, req CheckOutRequest) (*models.Reservation, error) {
	reservation, err := s.GetReservationByID(reservationID)
	if err != nil {
		return nil, err
	}
	if !reservation.Status.CanTransitionTo(models.ReservationStatusCheckedOut) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition,
			reservation.Status, models.ReservationStatusCheckedOut)
	}

	if req.CheckOut == nil {
		return s.changeStatus(reservationID, models.ReservationStatusCheckedOut)
	}

	// Adjusted departure: re-validate the range and, since an extension could
	// collide with a later booking, re-run the overlap check excluding self.
	newCheckOut, err := utils.ParseDate(*req.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("check_out: %w: %v", ErrInvalidDateRange, err)
	}
	if !reservation.CheckIn.Before(newCheckOut) {
		return nil, fmt.Errorf("%w: adjusted check-out %s must be after check-in", ErrInvalidDateRange, *req.CheckOut)
	}

	spot, err := s.spotRepo.GetSpotByID(reservation.SpotID)
	if err != nil {
		return nil, fmt.Errorf("failed to load spot for checkout: %w", err)
	}

	unlock := s.locks.lock(reservation.SpotID)
	defer unlock()

	err = s.txRunner.RunSerializable(func(tx repositories.SQLExecutor) error {
		available, availErr := s.reservationRepo.CheckSpotAvailability(tx, reservation.SpotID, reservation.CheckIn, newCheckOut, &reservationID)
		if availErr != nil {
			return fmt.Errorf("failed to check spot availability for checkout adjustment: %w", availErr)
		}
		if !available {
			return ErrSpotUnavailable
		}

		reservation.CheckOut = newCheckOut
		reservation.TotalPrice = ComputePrice(spot, reservation.CheckIn, newCheckOut)
		reservation.Status = models.ReservationStatusCheckedOut
		_, updateErr := s.reservationRepo.UpdateReservation(tx, reservation)
		if updateErr != nil {
			return fmt.Errorf("failed to check out reservation: %w", updateErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetReservationByID(reservationID)
}

func (s *reservationService) IsAvailable(spotID, checkIn, checkOut string, excludeReservationID *string) (bool, error) {
	in, out, err := parseStayDates(checkIn, checkOut)
	if err != nil {
		return false, err
	}
	if _, err := s.spotRepo.GetSpotByID(spotID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, fmt.Errorf("%w: ID %s", ErrSpotNotFound, spotID)
		}
		return false, fmt.Errorf("failed to load spot for availability check: %w", err)
	}
	available, err := s.reservationRepo.CheckSpotAvailability(s.db, spotID, in, out, excludeReservationID)
	if err != nil {
		return false, fmt.Errorf("failed to check spot availability: %w", err)
	}
	return available, nil
}

func (s *reservationService) AddNote(reservationID string, req AddNoteRequest) (*models.ReservationNote, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, ErrEmptyNoteText
	}
	if _, err := s.reservationRepo.GetReservationByID(reservationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation for note: %w", err)
	}

	author := req.Author
	if author == "" {
		author = "Admin"
	}
	note := &models.ReservationNote{
		ReservationID: reservationID,
		Text:          req.Text,
		Author:        author,
	}
	created, err := s.noteRepo.CreateNote(s.db, note)
	if err != nil {
		return nil, fmt.Errorf("failed to create reservation note: %w", err)
	}
	return created, nil
}

func (s *reservationService) GetNotes(reservationID string) ([]models.ReservationNote, error) {
	if _, err := s.reservationRepo.GetReservationByID(reservationID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation for notes: %w", err)
	}
	notes, err := s.noteRepo.GetNotesByReservation(reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservation notes: %w", err)
	}
	return notes, nil
}

func (s *reservationService) ExpireStaleHolds(ttl time.Duration) (int64, error) {
	cutoff := s.now().Add(-ttl)
	expired, err := s.reservationRepo.ExpireStaleHolds(s.db, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to expire stale holds: %w", err)
	}
	return expired, nil
}
