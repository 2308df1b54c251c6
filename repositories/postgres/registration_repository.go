package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/models"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/repositories"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/services"
)

const registrationColumns = `id, camp_id, camp_name, fees, participant_email,
	participant_name, age, phone, gender, emergency_contact, organizer_email,
	confirmation_status, payment_status, created_at, updated_at`

// RegistrationRepository implements the repositories.RegistrationRepository interface
type RegistrationRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *DB, logger *zap.Logger) repositories.RegistrationRepository {
	return &RegistrationRepository{
		db:     db,
		logger: logger,
	}
}

func scanRegistration(row interface{ Scan(dest ...interface{}) error }) (*models.Registration, error) {
	reg := &models.Registration{}
	err := row.Scan(
		&reg.ID,
		&reg.CampID,
		&reg.CampName,
		&reg.Fees,
		&reg.ParticipantEmail,
		&reg.ParticipantName,
		&reg.Age,
		&reg.Phone,
		&reg.Gender,
		&reg.EmergencyContact,
		&reg.OrganizerEmail,
		&reg.ConfirmationStatus,
		&reg.PaymentStatus,
		&reg.CreatedAt,
		&reg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reg, nil
}

// Create inserts a new registration. The unique (participant_email, camp_id)
// constraint turns a racing duplicate into ErrDuplicateRegistration instead
// of a second record.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	query := `
		INSERT INTO registrations (id, camp_id, camp_name, fees,
			participant_email, participant_name, age, phone, gender,
			emergency_contact, organizer_email, confirmation_status,
			payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		reg.ID,
		reg.CampID,
		reg.CampName,
		reg.Fees,
		reg.ParticipantEmail,
		reg.ParticipantName,
		reg.Age,
		reg.Phone,
		reg.Gender,
		reg.EmergencyContact,
		reg.OrganizerEmail,
		reg.ConfirmationStatus,
		reg.PaymentStatus,
		reg.CreatedAt,
		reg.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", services.ErrDuplicateRegistration, reg.CampID)
		}
		return fmt.Errorf("failed to create registration: %w", err)
	}

	r.logger.Debug("registration created",
		zap.String("id", reg.ID.String()),
		zap.String("participant", reg.ParticipantEmail),
		zap.String("camp_id", reg.CampID.String()))
	return nil
}

// GetByID retrieves a registration by ID
func (r *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	reg, err := scanRegistration(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", services.ErrRegistrationNotFound, id)
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return reg, nil
}

// GetByParticipant retrieves a participant's registrations, optionally
// filtered to a single camp
func (r *RegistrationRepository) GetByParticipant(ctx context.Context, email string, campID *uuid.UUID) ([]*models.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE participant_email = $1`
	args := []interface{}{email}

	if campID != nil {
		query += ` AND camp_id = $2`
		args = append(args, *campID)
	}
	query += ` ORDER BY created_at DESC`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query registrations: %w", err)
	}
	defer rows.Close()

	var regs []*models.Registration
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration: %w", err)
		}
		regs = append(regs, reg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating registration rows: %w", err)
	}

	return regs, nil
}

// ExistsForCamp reports whether the participant already registered for the camp
func (r *RegistrationRepository) ExistsForCamp(ctx context.Context, email string, campID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM registrations WHERE participant_email = $1 AND camp_id = $2)`

	executor := GetExecutor(ctx, r.db)
	var exists bool
	if err := executor.QueryRowContext(ctx, query, email, campID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}

	return exists, nil
}

// UpdateConfirmationStatus patches the confirmation status field
func (r *RegistrationRepository) UpdateConfirmationStatus(ctx context.Context, id uuid.UUID, status models.ConfirmationStatus) error {
	query := `
		UPDATE registrations
		SET confirmation_status = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	return r.patchStatus(ctx, query, id, string(status))
}

// UpdatePaymentStatus patches the payment status field
func (r *RegistrationRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	query := `
		UPDATE registrations
		SET payment_status = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`
	return r.patchStatus(ctx, query, id, string(status))
}

func (r *RegistrationRepository) patchStatus(ctx context.Context, query string, id uuid.UUID, status string) error {
	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update registration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", services.ErrRegistrationNotFound, id)
	}

	r.logger.Debug("registration status updated",
		zap.String("id", id.String()),
		zap.String("status", status))
	return nil
}

// Delete deletes a registration
func (r *RegistrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM registrations WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete registration: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", services.ErrRegistrationNotFound, id)
	}

	r.logger.Debug("registration deleted", zap.String("id", id.String()))
	return nil
}
