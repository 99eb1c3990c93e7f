package services

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/Mapsqc/ProjetLajoie/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- In-memory fakes ---
//
// The fakes reproduce the repository contracts over plain maps, including the
// half-open overlap rule, so the service logic is exercised without a
// database. Executor arguments are ignored.

type fakeTxRunner struct{}

func (fakeTxRunner) RunSerializable(fn func(tx repositories.SQLExecutor) error) error {
	return fn(nil)
}

type fakeReservationRepo struct {
	mu    sync.Mutex
	seq   int
	store map[string]*models.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{store: make(map[string]*models.Reservation)}
}

func (f *fakeReservationRepo) CreateReservation(_ repositories.SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	cp := *reservation
	if cp.ID == "" {
		cp.ID = fmt.Sprintf("res-%03d", f.seq)
	}
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.store[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeReservationRepo) GetReservationByID(id string) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.store[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *stored
	return &cp, nil
}

func (f *fakeReservationRepo) GetReservations(filters models.ReservationFilters) ([]models.Reservation, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Reservation
	for _, r := range f.store {
		if filters.SpotID != nil && r.SpotID != *filters.SpotID {
			continue
		}
		if filters.Status != nil && *filters.Status != "" && string(r.Status) != *filters.Status {
			continue
		}
		out = append(out, *r)
	}
	return out, len(out), nil
}

func (f *fakeReservationRepo) UpdateReservation(_ repositories.SQLExecutor, reservation *models.Reservation) (*models.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.store[reservation.ID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	stored.SpotID = reservation.SpotID
	stored.CheckIn = reservation.CheckIn
	stored.CheckOut = reservation.CheckOut
	stored.Status = reservation.Status
	stored.TotalPrice = reservation.TotalPrice
	stored.AdultsCount = reservation.AdultsCount
	stored.ChildrenCount = reservation.ChildrenCount
	stored.UpdatedAt = time.Now()
	cp := *stored
	return &cp, nil
}

func (f *fakeReservationRepo) UpdateReservationStatus(_ repositories.SQLExecutor, id string, status models.ReservationStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.store[id]
	if !ok {
		return repositories.ErrNotFound
	}
	stored.Status = status
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeReservationRepo) CheckSpotAvailability(_ repositories.SQLExecutor, spotID string, checkIn, checkOut time.Time, excludeReservationID *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.store {
		if r.SpotID != spotID || !r.Status.IsBlocking() {
			continue
		}
		if excludeReservationID != nil && r.ID == *excludeReservationID {
			continue
		}
		if checkIn.Before(r.CheckOut) && r.CheckIn.Before(checkOut) {
			return false, nil
		}
	}
	return true, nil
}

func (f *fakeReservationRepo) ExpireStaleHolds(_ repositories.SQLExecutor, cutoff time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var expired int64
	for _, r := range f.store {
		if r.Status == models.ReservationStatusHold && r.CreatedAt.Before(cutoff) {
			r.Status = models.ReservationStatusCancelled
			r.UpdatedAt = time.Now()
			expired++
		}
	}
	return expired, nil
}

// age rewinds a stored reservation's creation time, for hold-expiry tests.
func (f *fakeReservationRepo) age(id string, createdAt time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[id].CreatedAt = createdAt
}

type fakeSpotRepo struct {
	seq       int
	spots     map[string]*models.Spot
	deleteErr error // forced failure for DeleteSpot
}

func (f *fakeSpotRepo) CreateSpot(_ repositories.SQLExecutor, spot *models.Spot) (*models.Spot, error) {
	f.seq++
	cp := *spot
	if cp.ID == "" {
		cp.ID = fmt.Sprintf("spot-%03d", f.seq)
	}
	f.spots[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeSpotRepo) GetSpotByID(id string) (*models.Spot, error) {
	spot, ok := f.spots[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *spot
	return &cp, nil
}

func (f *fakeSpotRepo) GetSpots(models.SpotFilters) ([]models.Spot, int, error) {
	var out []models.Spot
	for _, s := range f.spots {
		out = append(out, *s)
	}
	return out, len(out), nil
}

func (f *fakeSpotRepo) UpdateSpot(_ repositories.SQLExecutor, spot *models.Spot) (*models.Spot, error) {
	if _, ok := f.spots[spot.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *spot
	f.spots[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeSpotRepo) SetSpotActive(_ repositories.SQLExecutor, id string, active bool) error {
	spot, ok := f.spots[id]
	if !ok {
		return repositories.ErrNotFound
	}
	spot.IsActive = active
	return nil
}

func (f *fakeSpotRepo) DeleteSpot(_ repositories.SQLExecutor, id string) error {
	if _, ok := f.spots[id]; !ok {
		return repositories.ErrNotFound
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.spots, id)
	return nil
}

type fakeCustomerRepo struct {
	seq       int
	customers map[string]*models.Customer
	deleteErr error // forced failure for DeleteCustomer
}

func (f *fakeCustomerRepo) CreateCustomer(_ repositories.SQLExecutor, customer *models.Customer) (*models.Customer, error) {
	f.seq++
	cp := *customer
	if cp.ID == "" {
		cp.ID = fmt.Sprintf("cust-%03d", f.seq)
	}
	f.customers[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeCustomerRepo) GetCustomerByID(id string) (*models.Customer, error) {
	customer, ok := f.customers[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *customer
	return &cp, nil
}

func (f *fakeCustomerRepo) GetCustomerByEmail(email string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeCustomerRepo) GetCustomers(int, int, *string) ([]models.Customer, int, error) {
	var out []models.Customer
	for _, c := range f.customers {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (f *fakeCustomerRepo) UpdateCustomer(_ repositories.SQLExecutor, customer *models.Customer) (*models.Customer, error) {
	if _, ok := f.customers[customer.ID]; !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *customer
	f.customers[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeCustomerRepo) DeleteCustomer(_ repositories.SQLExecutor, id string) error {
	if _, ok := f.customers[id]; !ok {
		return repositories.ErrNotFound
	}
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.customers, id)
	return nil
}

type fakeNoteRepo struct {
	mu    sync.Mutex
	seq   int
	notes map[string][]models.ReservationNote
}

func (f *fakeNoteRepo) CreateNote(_ repositories.SQLExecutor, note *models.ReservationNote) (*models.ReservationNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	cp := *note
	cp.ID = fmt.Sprintf("note-%03d", f.seq)
	// Distinct, strictly increasing timestamps so ordering is observable.
	cp.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.seq) * time.Second)
	f.notes[cp.ReservationID] = append(f.notes[cp.ReservationID], cp)
	return &cp, nil
}

func (f *fakeNoteRepo) GetNotesByReservation(reservationID string) ([]models.ReservationNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ReservationNote(nil), f.notes[reservationID]...), nil
}

// --- Test fixture ---

type fixture struct {
	reservations *fakeReservationRepo
	spots        *fakeSpotRepo
	customers    *fakeCustomerRepo
	notes        *fakeNoteRepo
	svc          *reservationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		reservations: newFakeReservationRepo(),
		spots: &fakeSpotRepo{spots: map[string]*models.Spot{
			"T-14":  {ID: "T-14", Name: "Terrain 14", Type: models.SpotTypeRV, Capacity: 6, PricePerNight: 55.00, IsActive: true},
			"T-15":  {ID: "T-15", Name: "Terrain 15", Type: models.SpotTypeRV, Capacity: 6, PricePerNight: 52.00, IsActive: true},
			"T-301": {ID: "T-301", Name: "Terrain 301", Type: models.SpotTypeTent, Capacity: 6, PricePerNight: 43.00, IsActive: false},
		}},
		customers: &fakeCustomerRepo{customers: map[string]*models.Customer{
			"cust-1": {ID: "cust-1", FirstName: "Marie", LastName: "Tremblay", Email: "marie@example.com", Phone: "418-555-0101"},
		}},
		notes: &fakeNoteRepo{notes: make(map[string][]models.ReservationNote)},
	}
	svc := NewReservationService(f.reservations, f.spots, f.customers, f.notes, fakeTxRunner{}, nil)
	f.svc = svc.(*reservationService)
	return f
}

func (f *fixture) create(t *testing.T, spotID, checkIn, checkOut string) *models.Reservation {
	t.Helper()
	reservation, err := f.svc.CreateReservation(CreateReservationRequest{
		SpotID:      spotID,
		CustomerID:  "cust-1",
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		AdultsCount: 2,
	})
	require.NoError(t, err)
	return reservation
}

// --- Creation ---

func TestCreateReservation(t *testing.T) {
	f := newFixture(t)

	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")

	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, models.ReservationStatusHold, reservation.Status)
	assert.Equal(t, 156.00, reservation.TotalPrice) // 3 nights * 52.00
	assert.Equal(t, "T-15", reservation.SpotID)
	assert.Equal(t, "cust-1", reservation.CustomerID)
}

func TestCreateReservationInvalidRange(t *testing.T) {
	f := newFixture(t)

	cases := []struct{ in, out string }{
		{"2025-07-13", "2025-07-10"}, // reversed
		{"2025-07-10", "2025-07-10"}, // zero nights
		{"not-a-date", "2025-07-10"},
		{"2025-07-10", "07/13/2025"},
	}
	for _, tc := range cases {
		_, err := f.svc.CreateReservation(CreateReservationRequest{
			SpotID: "T-15", CustomerID: "cust-1",
			CheckIn: tc.in, CheckOut: tc.out, AdultsCount: 2,
		})
		assert.ErrorIs(t, err, ErrInvalidDateRange, "range %s..%s", tc.in, tc.out)
	}
}

func TestCreateReservationGuestCounts(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateReservation(CreateReservationRequest{
		SpotID: "T-15", CustomerID: "cust-1",
		CheckIn: "2025-07-10", CheckOut: "2025-07-13", AdultsCount: 0,
	})
	assert.ErrorIs(t, err, ErrReservationValidation)

	_, err = f.svc.CreateReservation(CreateReservationRequest{
		SpotID: "T-15", CustomerID: "cust-1",
		CheckIn: "2025-07-10", CheckOut: "2025-07-13", AdultsCount: 2, ChildrenCount: -1,
	})
	assert.ErrorIs(t, err, ErrReservationValidation)
}

func TestCreateReservationUnknownReferences(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateReservation(CreateReservationRequest{
		SpotID: "T-999", CustomerID: "cust-1",
		CheckIn: "2025-07-10", CheckOut: "2025-07-13", AdultsCount: 2,
	})
	assert.ErrorIs(t, err, ErrSpotNotFound)

	_, err = f.svc.CreateReservation(CreateReservationRequest{
		SpotID: "T-15", CustomerID: "cust-999",
		CheckIn: "2025-07-10", CheckOut: "2025-07-13", AdultsCount: 2,
	})
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestCreateReservationInactiveSpot(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.CreateReservation(CreateReservationRequest{
		SpotID: "T-301", CustomerID: "cust-1",
		CheckIn: "2025-07-10", CheckOut: "2025-07-13", AdultsCount: 2,
	})
	assert.ErrorIs(t, err, ErrSpotInactive)
}

// --- Overlap semantics ---

func TestCreateReservationConflicts(t *testing.T) {
	f := newFixture(t)
	f.create(t, "T-15", "2025-07-10", "2025-07-13")

	overlapping := []struct{ in, out string }{
		{"2025-07-10", "2025-07-13"}, // identical
		{"2025-07-09", "2025-07-11"}, // overlaps the start
		{"2025-07-12", "2025-07-15"}, // overlaps the end
		{"2025-07-09", "2025-07-15"}, // envelops
		{"2025-07-11", "2025-07-12"}, // contained
	}
	for _, tc := range overlapping {
		_, err := f.svc.CreateReservation(CreateReservationRequest{
			SpotID: "T-15", CustomerID: "cust-1",
			CheckIn: tc.in, CheckOut: tc.out, AdultsCount: 1,
		})
		assert.ErrorIs(t, err, ErrSpotUnavailable, "range %s..%s", tc.in, tc.out)
	}
}

func TestAdjacentStaysDoNotConflict(t *testing.T) {
	f := newFixture(t)
	f.create(t, "T-15", "2025-07-10", "2025-07-13")

	// Check-out day is free for the next arrival, and the day before
	// check-in is a valid departure.
	f.create(t, "T-15", "2025-07-13", "2025-07-15")
	f.create(t, "T-15", "2025-07-08", "2025-07-10")
}

func TestDifferentSpotsNeverConflict(t *testing.T) {
	f := newFixture(t)
	f.create(t, "T-15", "2025-07-10", "2025-07-13")
	f.create(t, "T-14", "2025-07-10", "2025-07-13")
}

func TestCancelFreesTheRange(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")

	available, err := f.svc.IsAvailable("T-15", "2025-07-10", "2025-07-13", nil)
	require.NoError(t, err)
	assert.False(t, available)

	_, err = f.svc.CancelReservation(reservation.ID)
	require.NoError(t, err)

	available, err = f.svc.IsAvailable("T-15", "2025-07-10", "2025-07-13", nil)
	require.NoError(t, err)
	assert.True(t, available)

	f.create(t, "T-15", "2025-07-10", "2025-07-13")
}

func TestIsAvailableUnknownSpot(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.IsAvailable("T-999", "2025-07-10", "2025-07-13", nil)
	assert.ErrorIs(t, err, ErrSpotNotFound)
}

// --- Date modification ---

func TestModifyDates(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")

	updated, err := f.svc.ModifyDates(reservation.ID, ModifyDatesRequest{
		CheckIn: "2025-07-20", CheckOut: "2025-07-24",
	})
	require.NoError(t, err)
	assert.Equal(t, 208.00, updated.TotalPrice) // 4 nights * 52.00
	assert.Equal(t, "2025-07-20", updated.CheckIn.Format("2006-01-02"))
}

func TestModifyDatesExcludesSelf(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")

	// Extending over the reservation's own range must not self-conflict.
	updated, err := f.svc.ModifyDates(reservation.ID, ModifyDatesRequest{
		CheckIn: "2025-07-10", CheckOut: "2025-07-15",
	})
	require.NoError(t, err)
	assert.Equal(t, 260.00, updated.TotalPrice) // 5 nights * 52.00
}

func TestModifyDatesConflict(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")
	f.create(t, "T-15", "2025-07-13", "2025-07-16")

	_, err := f.svc.ModifyDates(reservation.ID, ModifyDatesRequest{
		CheckIn: "2025-07-10", CheckOut: "2025-07-14",
	})
	assert.ErrorIs(t, err, ErrSpotUnavailable)
}

func TestModifyDatesStateGate(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")
	_, err := f.svc.CancelReservation(reservation.ID)
	require.NoError(t, err)

	_, err = f.svc.ModifyDates(reservation.ID, ModifyDatesRequest{
		CheckIn: "2025-07-20", CheckOut: "2025-07-22",
	})
	assert.ErrorIs(t, err, ErrInvalidState)
}

// --- Spot reassignment ---

func TestReassignSpot(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")

	updated, err := f.svc.ReassignSpot(reservation.ID, ReassignSpotRequest{SpotID: "T-14"})
	require.NoError(t, err)
	assert.Equal(t, "T-14", updated.SpotID)
	assert.Equal(t, 165.00, updated.TotalPrice) // repriced at 3 nights * 55.00

	// The old spot is free again.
	available, err := f.svc.IsAvailable("T-15", "2025-07-10", "2025-07-13", nil)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestReassignSpotTargetOccupied(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")
	f.create(t, "T-14", "2025-07-11", "2025-07-14")

	_, err := f.svc.ReassignSpot(reservation.ID, ReassignSpotRequest{SpotID: "T-14"})
	assert.ErrorIs(t, err, ErrSpotUnavailable)
}

func TestReassignSpotInactiveTarget(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")

	_, err := f.svc.ReassignSpot(reservation.ID, ReassignSpotRequest{SpotID: "T-301"})
	assert.ErrorIs(t, err, ErrSpotInactive)
}

// --- Lifecycle ---

func TestFullLifecycle(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC) }
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")

	confirmed, err := f.svc.ConfirmReservation(reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusConfirmed, confirmed.Status)

	checkedIn, err := f.svc.CheckInReservation(reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCheckedIn, checkedIn.Status)

	checkedOut, err := f.svc.CheckOutReservation(reservation.ID, CheckOutRequest{})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCheckedOut, checkedOut.Status)

	// A checked-out stay no longer blocks its range.
	available, err := f.svc.IsAvailable("T-15", "2025-07-10", "2025-07-13", nil)
	require.NoError(t, err)
	assert.True(t, available)
}

func TestCheckInRequiresConfirmed(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC) }
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")

	_, err := f.svc.CheckInReservation(reservation.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckInBeforeArrivalDate(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return time.Date(2025, 7, 9, 23, 0, 0, 0, time.UTC) }
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")
	_, err := f.svc.ConfirmReservation(reservation.ID)
	require.NoError(t, err)

	_, err = f.svc.CheckInReservation(reservation.ID)
	assert.ErrorIs(t, err, ErrInvalidState)

	// Same calendar day is fine, whatever the hour.
	f.svc.now = func() time.Time { return time.Date(2025, 7, 10, 0, 30, 0, 0, time.UTC) }
	checkedIn, err := f.svc.CheckInReservation(reservation.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCheckedIn, checkedIn.Status)
}

func TestTerminalStatusesAreImmutable(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")
	_, err := f.svc.CancelReservation(reservation.ID)
	require.NoError(t, err)

	_, err = f.svc.ConfirmReservation(reservation.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.svc.CancelReservation(reservation.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.svc.CheckOutReservation(reservation.ID, CheckOutRequest{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelAfterCheckInIsRejected(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC) }
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")
	_, err := f.svc.ConfirmReservation(reservation.ID)
	require.NoError(t, err)
	_, err = f.svc.CheckInReservation(reservation.ID)
	require.NoError(t, err)

	_, err = f.svc.CancelReservation(reservation.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCheckOutWithAdjustedDate(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC) }
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")
	_, err := f.svc.ConfirmReservation(reservation.ID)
	require.NoError(t, err)
	_, err = f.svc.CheckInReservation(reservation.ID)
	require.NoError(t, err)

	// Early departure: one night less, price follows.
	departure := "2025-07-12"
	checkedOut, err := f.svc.CheckOutReservation(reservation.ID, CheckOutRequest{CheckOut: &departure})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCheckedOut, checkedOut.Status)
	assert.Equal(t, 104.00, checkedOut.TotalPrice) // 2 nights * 52.00
	assert.Equal(t, "2025-07-12", checkedOut.CheckOut.Format("2006-01-02"))
}

func TestCheckOutExtensionConflicts(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return time.Date(2025, 7, 10, 15, 0, 0, 0, time.UTC) }
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")
	f.create(t, "T-15", "2025-07-13", "2025-07-16")
	_, err := f.svc.ConfirmReservation(reservation.ID)
	require.NoError(t, err)
	_, err = f.svc.CheckInReservation(reservation.ID)
	require.NoError(t, err)

	departure := "2025-07-14"
	_, err = f.svc.CheckOutReservation(reservation.ID, CheckOutRequest{CheckOut: &departure})
	assert.ErrorIs(t, err, ErrSpotUnavailable)
}

// --- Notes ---

func TestNotes(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")

	first, err := f.svc.AddNote(reservation.ID, AddNoteRequest{Text: "Arrive tard", Author: "Julie"})
	require.NoError(t, err)
	assert.Equal(t, "Julie", first.Author)

	second, err := f.svc.AddNote(reservation.ID, AddNoteRequest{Text: "Paiement reçu"})
	require.NoError(t, err)
	assert.Equal(t, "Admin", second.Author) // default author

	notes, err := f.svc.GetNotes(reservation.ID)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "Arrive tard", notes[0].Text) // oldest first
	assert.Equal(t, "Paiement reçu", notes[1].Text)
}

func TestAddNoteValidation(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")

	_, err := f.svc.AddNote(reservation.ID, AddNoteRequest{Text: ""})
	assert.ErrorIs(t, err, ErrEmptyNoteText)
	_, err = f.svc.AddNote(reservation.ID, AddNoteRequest{Text: "   "})
	assert.ErrorIs(t, err, ErrEmptyNoteText)
	_, err = f.svc.AddNote("res-999", AddNoteRequest{Text: "bonjour"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestNotesAllowedOnTerminalReservation(t *testing.T) {
	f := newFixture(t)
	reservation := f.create(t, "T-15", "2025-07-10", "2025-07-13")
	_, err := f.svc.CancelReservation(reservation.ID)
	require.NoError(t, err)

	_, err = f.svc.AddNote(reservation.ID, AddNoteRequest{Text: "Annulé par téléphone"})
	assert.NoError(t, err)
}

// --- Concurrency ---

func TestConcurrentCreateSameSpot(t *testing.T) {
	f := newFixture(t)

	req := CreateReservationRequest{
		SpotID: "T-14", CustomerID: "cust-1",
		CheckIn: "2025-07-10", CheckOut: "2025-07-13", AdultsCount: 2,
	}

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreateReservation(req)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case assert.ErrorIs(t, err, ErrSpotUnavailable):
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)
}

// --- Hold expiry ---

func TestExpireStaleHolds(t *testing.T) {
	f := newFixture(t)
	f.svc.now = func() time.Time { return time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC) }

	stale := f.create(t, "T-15", "2025-07-10", "2025-07-13")
	fresh := f.create(t, "T-15", "2025-07-20", "2025-07-23")
	confirmed := f.create(t, "T-14", "2025-07-10", "2025-07-13")
	_, err := f.svc.ConfirmReservation(confirmed.ID)
	require.NoError(t, err)

	f.reservations.age(stale.ID, time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC))
	f.reservations.age(fresh.ID, time.Date(2025, 7, 1, 11, 30, 0, 0, time.UTC))
	f.reservations.age(confirmed.ID, time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC))

	expired, err := f.svc.ExpireStaleHolds(2 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	reloaded, err := f.svc.GetReservationByID(stale.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusCancelled, reloaded.Status)

	reloaded, err = f.svc.GetReservationByID(fresh.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusHold, reloaded.Status)

	reloaded, err = f.svc.GetReservationByID(confirmed.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusConfirmed, reloaded.Status)
}
