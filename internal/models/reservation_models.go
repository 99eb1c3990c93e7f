package models

import "time"

// ReservationStatus defines the type for reservation statuses.
type ReservationStatus string

const (
	ReservationStatusHold       ReservationStatus = "HOLD"
	ReservationStatusConfirmed  ReservationStatus = "CONFIRMED"
	ReservationStatusCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationStatusCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationStatusCancelled  ReservationStatus = "CANCELLED"
)

// BlockingStatuses are the statuses that occupy a spot for the reservation's
// date range. CANCELLED and CHECKED_OUT reservations never block.
var BlockingStatuses = []ReservationStatus{
	ReservationStatusHold,
	ReservationStatusConfirmed,
	ReservationStatusCheckedIn,
}

// IsValidReservationStatus checks if the provided status string is a valid ReservationStatus.
func IsValidReservationStatus(status string) bool {
	switch ReservationStatus(status) {
	case ReservationStatusHold,
		ReservationStatusConfirmed,
		ReservationStatusCheckedIn,
		ReservationStatusCheckedOut,
		ReservationStatusCancelled:
		return true
	default:
		return false
	}
}

// IsBlocking reports whether a reservation in this status occupies its spot.
func (s ReservationStatus) IsBlocking() bool {
	switch s {
	case ReservationStatusHold, ReservationStatusConfirmed, ReservationStatusCheckedIn:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status permits no further transitions.
// Terminal reservations are immutable except for note additions.
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationStatusCheckedOut || s == ReservationStatusCancelled
}

// CanTransitionTo reports whether the status machine permits moving from s to
// target. The table is exhaustive over the five statuses:
//
//	HOLD       -> CONFIRMED | CANCELLED
//	CONFIRMED  -> CHECKED_IN | CANCELLED
//	CHECKED_IN -> CHECKED_OUT
//	CHECKED_OUT, CANCELLED -> (none)
func (s ReservationStatus) CanTransitionTo(target ReservationStatus) bool {
	switch s {
	case ReservationStatusHold:
		return target == ReservationStatusConfirmed || target == ReservationStatusCancelled
	case ReservationStatusConfirmed:
		return target == ReservationStatusCheckedIn || target == ReservationStatusCancelled
	case ReservationStatusCheckedIn:
		return target == ReservationStatusCheckedOut
	default:
		return false
	}
}

// Reservation represents a time-bounded booking of a spot by a customer.
// CheckOut is exclusive: a checkout on day X does not conflict with a
// check-in on day X.
type Reservation struct {
	ID            string            `json:"id" db:"id"`
	SpotID        string            `json:"spot_id" db:"spot_id" binding:"required"`
	CustomerID    string            `json:"customer_id" db:"customer_id" binding:"required"`
	CheckIn       time.Time         `json:"check_in" db:"check_in"`
	CheckOut      time.Time         `json:"check_out" db:"check_out"`
	Status        ReservationStatus `json:"status" db:"status"`
	TotalPrice    float64           `json:"total_price" db:"total_price"`
	AdultsCount   int               `json:"adults_count" db:"adults_count"`
	ChildrenCount int               `json:"children_count" db:"children_count"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
	Spot          *Spot             `json:"spot,omitempty"`     // For joining with Spot details
	Customer      *Customer         `json:"customer,omitempty"` // For joining with Customer details
	Notes         []ReservationNote `json:"notes,omitempty"`    // Audit trail, oldest first
}

// ReservationNote is a single append-only audit entry attached to a
// reservation. Notes are never mutated or deleted once created.
type ReservationNote struct {
	ID            string    `json:"id" db:"id"`
	ReservationID string    `json:"reservation_id" db:"reservation_id"`
	Text          string    `json:"text" db:"text" binding:"required"`
	Author        string    `json:"author" db:"author"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// ReservationFilters defines the available filters for querying reservations.
type ReservationFilters struct {
	SpotID     *string    `form:"spot_id"`
	CustomerID *string    `form:"customer_id"`
	Status     *string    `form:"status"`
	DateFrom   *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo     *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
}
