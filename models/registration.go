package models

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmationStatus represents the organizer-side status of a registration
type ConfirmationStatus string

const (
	ConfirmationPending   ConfirmationStatus = "pending"
	ConfirmationConfirmed ConfirmationStatus = "confirmed"
)

// PaymentStatus represents the participant-side payment status of a registration
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Registration is the join record linking a participant to a camp.
// ParticipantEmail is the owner field for participant-scoped checks;
// OrganizerEmail (denormalized from the camp) for organizer-scoped ones.
// The pair (participant_email, camp_id) is unique in the store.
type Registration struct {
	ID                 uuid.UUID          `json:"id" db:"id"`
	CampID             uuid.UUID          `json:"camp_id" db:"camp_id"`
	CampName           string             `json:"camp_name" db:"camp_name"`
	Fees               float64            `json:"fees" db:"fees"`
	ParticipantEmail   string             `json:"participant_email" db:"participant_email"`
	ParticipantName    string             `json:"participant_name" db:"participant_name"`
	Age                int                `json:"age" db:"age"`
	Phone              string             `json:"phone" db:"phone"`
	Gender             string             `json:"gender" db:"gender"`
	EmergencyContact   string             `json:"emergency_contact,omitempty" db:"emergency_contact"`
	OrganizerEmail     string             `json:"organizer_email" db:"organizer_email"`
	ConfirmationStatus ConfirmationStatus `json:"confirmation_status" db:"confirmation_status"`
	PaymentStatus      PaymentStatus      `json:"payment_status" db:"payment_status"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Registration model
func (Registration) TableName() string {
	return "registrations"
}

// IsOwnedBy reports whether the given email matches the registering participant
func (r *Registration) IsOwnedBy(email string) bool {
	return r.ParticipantEmail == email
}

// IsManagedBy reports whether the given email matches the camp's organizer
func (r *Registration) IsManagedBy(email string) bool {
	return r.OrganizerEmail == email
}

// ValidConfirmationStatus reports whether s is a known confirmation status
func ValidConfirmationStatus(s string) bool {
	switch ConfirmationStatus(s) {
	case ConfirmationPending, ConfirmationConfirmed:
		return true
	}
	return false
}
