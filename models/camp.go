package models

import (
	"time"

	"github.com/google/uuid"
)

// Camp represents a medical-service event owned by an organizer.
// OrganizerEmail is the owner field checked before any mutation.
type Camp struct {
	ID                     uuid.UUID `json:"id" db:"id"`
	Name                   string    `json:"name" db:"name"`
	ImageURL               string    `json:"image_url,omitempty" db:"image_url"`
	Fees                   float64   `json:"fees" db:"fees"`
	ScheduledAt            time.Time `json:"scheduled_at" db:"scheduled_at"`
	Location               string    `json:"location" db:"location"`
	HealthcareProfessional string    `json:"healthcare_professional" db:"healthcare_professional"`
	ParticipantCount       int       `json:"participant_count" db:"participant_count"`
	Description            string    `json:"description" db:"description"`
	OrganizerEmail         string    `json:"organizer_email" db:"organizer_email"`
	CreatedAt              time.Time `json:"created_at" db:"created_at"`
	UpdatedAt              time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Camp model
func (Camp) TableName() string {
	return "camps"
}

// IsOwnedBy reports whether the given email matches the camp's organizer
func (c *Camp) IsOwnedBy(email string) bool {
	return c.OrganizerEmail == email
}
