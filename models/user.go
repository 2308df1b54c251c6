package models

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of a user on the platform
type UserRole string

const (
	RoleParticipant UserRole = "participant"
	RoleOrganizer   UserRole = "organizer"
)

// User represents a platform user, keyed by unique email.
// Role elevation to organizer happens out-of-band; nothing in this
// codebase promotes a user.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	PhotoURL  string    `json:"photo_url,omitempty" db:"photo_url"`
	Role      UserRole  `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new User instance with the default participant role
func NewUser(email, name, photoURL string) *User {
	now := time.Now()
	return &User{
		ID:        uuid.New(),
		Email:     email,
		Name:      name,
		PhotoURL:  photoURL,
		Role:      RoleParticipant,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsOrganizer returns true if the user holds the organizer role
func (u *User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}
