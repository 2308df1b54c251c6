package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a participant's rating of a camp they attended.
type Feedback struct {
	ID               uuid.UUID `json:"id" db:"id"`
	CampID           uuid.UUID `json:"camp_id" db:"camp_id"`
	CampName         string    `json:"camp_name" db:"camp_name"`
	ParticipantEmail string    `json:"participant_email" db:"participant_email"`
	ParticipantName  string    `json:"participant_name" db:"participant_name"`
	Rating           int       `json:"rating" db:"rating"`
	Comment          string    `json:"comment" db:"comment"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Feedback model
func (Feedback) TableName() string {
	return "feedbacks"
}
