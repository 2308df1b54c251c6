package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the lifecycle status of a payment order
type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
)

// Order records a payment attempt against a registration. The core only
// records orders and patches their status; the payment provider owns the
// actual payment state machine.
type Order struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	RegistrationID   uuid.UUID   `json:"registration_id" db:"registration_id"`
	CampID           uuid.UUID   `json:"camp_id" db:"camp_id"`
	CampName         string      `json:"camp_name" db:"camp_name"`
	ParticipantEmail string      `json:"participant_email" db:"participant_email"`
	Amount           int64       `json:"amount" db:"amount"` // smallest currency unit
	Currency         string      `json:"currency" db:"currency"`
	TransactionID    string      `json:"transaction_id" db:"transaction_id"`
	Status           OrderStatus `json:"status" db:"status"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// IsOwnedBy reports whether the given email matches the paying participant
func (o *Order) IsOwnedBy(email string) bool {
	return o.ParticipantEmail == email
}

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderPaid:
		return true
	}
	return false
}
