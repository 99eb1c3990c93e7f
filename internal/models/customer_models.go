package models

import "time"

// Customer represents a registered camper. Identity is immutable once
// created; reservations reference customers but never own them.
type Customer struct {
	ID        string    `json:"id" db:"id"`
	FirstName string    `json:"first_name" db:"first_name" binding:"required"`
	LastName  string    `json:"last_name" db:"last_name" binding:"required"`
	Email     string    `json:"email" db:"email" binding:"required"`
	Phone     string    `json:"phone" db:"phone"`
	City      *string   `json:"city,omitempty" db:"city"`
	Province  *string   `json:"province,omitempty" db:"province"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
