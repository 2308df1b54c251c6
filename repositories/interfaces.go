package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/models"
)

// TransactionManager manages database transactions
type TransactionManager interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) (Transaction, error)

	// InTransaction executes a function within a transaction.
	// Automatically commits if the function succeeds, rolls back on error.
	InTransaction(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error
}

// Transaction represents a database transaction
type Transaction interface {
	// Commit commits the transaction
	Commit() error

	// Rollback rolls back the transaction
	Rollback() error

	// Context returns the transaction context
	Context() context.Context
}

// UserRepository handles user record operations
type UserRepository interface {
	// Create creates a new user record
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by its unique email
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*models.User, error)

	// Update patches a user's mutable profile fields by id
	Update(ctx context.Context, user *models.User) error
}

// CampRepository handles camp record operations
type CampRepository interface {
	// Create creates a new camp
	Create(ctx context.Context, camp *models.Camp) error

	// GetByID retrieves a camp by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Camp, error)

	// List retrieves camps matching an optional search term, ordered by
	// an optional sort key (participantCount, fees, name)
	List(ctx context.Context, search, sort string) ([]*models.Camp, error)

	// GetByOrganizer retrieves all camps owned by an organizer
	GetByOrganizer(ctx context.Context, email string) ([]*models.Camp, error)

	// Update updates a camp
	Update(ctx context.Context, camp *models.Camp) error

	// Delete deletes a camp
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementParticipantCount atomically adjusts a camp's participant
	// count by delta
	IncrementParticipantCount(ctx context.Context, id uuid.UUID, delta int) error
}

// RegistrationRepository handles registration record operations
type RegistrationRepository interface {
	// Create inserts a new registration. A racing duplicate for the same
	// (participant_email, camp_id) pair surfaces as a conflict error.
	Create(ctx context.Context, reg *models.Registration) error

	// GetByID retrieves a registration by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error)

	// GetByParticipant retrieves a participant's registrations, optionally
	// filtered to a single camp
	GetByParticipant(ctx context.Context, email string, campID *uuid.UUID) ([]*models.Registration, error)

	// ExistsForCamp reports whether the participant already registered
	// for the camp
	ExistsForCamp(ctx context.Context, email string, campID uuid.UUID) (bool, error)

	// UpdateConfirmationStatus patches the confirmation status field
	UpdateConfirmationStatus(ctx context.Context, id uuid.UUID, status models.ConfirmationStatus) error

	// UpdatePaymentStatus patches the payment status field
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error

	// Delete deletes a registration
	Delete(ctx context.Context, id uuid.UUID) error
}

// FeedbackRepository handles feedback record operations
type FeedbackRepository interface {
	// Create inserts a new feedback entry
	Create(ctx context.Context, fb *models.Feedback) error

	// List retrieves all feedback entries, newest first
	List(ctx context.Context) ([]*models.Feedback, error)
}

// OrderRepository handles payment order operations
type OrderRepository interface {
	// Create records a new order
	Create(ctx context.Context, order *models.Order) error

	// GetByID retrieves an order by ID
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)

	// GetByParticipant retrieves a participant's orders, newest first
	GetByParticipant(ctx context.Context, email string) ([]*models.Order, error)

	// UpdateStatus patches the order status field
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
}

// Repositories aggregates all repository instances
type Repositories struct {
	Users         UserRepository
	Camps         CampRepository
	Registrations RegistrationRepository
	Feedbacks     FeedbackRepository
	Orders        OrderRepository
}
