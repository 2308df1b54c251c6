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

const campColumns = `id, name, image_url, fees, scheduled_at, location,
	healthcare_professional, participant_count, description, organizer_email,
	created_at, updated_at`

// CampRepository implements the repositories.CampRepository interface
type CampRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewCampRepository creates a new camp repository
func NewCampRepository(db *DB, logger *zap.Logger) repositories.CampRepository {
	return &CampRepository{
		db:     db,
		logger: logger,
	}
}

func scanCamp(row interface{ Scan(dest ...interface{}) error }) (*models.Camp, error) {
	camp := &models.Camp{}
	err := row.Scan(
		&camp.ID,
		&camp.Name,
		&camp.ImageURL,
		&camp.Fees,
		&camp.ScheduledAt,
		&camp.Location,
		&camp.HealthcareProfessional,
		&camp.ParticipantCount,
		&camp.Description,
		&camp.OrganizerEmail,
		&camp.CreatedAt,
		&camp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return camp, nil
}

// Create creates a new camp
func (r *CampRepository) Create(ctx context.Context, camp *models.Camp) error {
	query := `
		INSERT INTO camps (id, name, image_url, fees, scheduled_at, location,
			healthcare_professional, participant_count, description,
			organizer_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		camp.ID,
		camp.Name,
		camp.ImageURL,
		camp.Fees,
		camp.ScheduledAt,
		camp.Location,
		camp.HealthcareProfessional,
		camp.ParticipantCount,
		camp.Description,
		camp.OrganizerEmail,
		camp.CreatedAt,
		camp.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create camp: %w", err)
	}

	r.logger.Debug("camp created",
		zap.String("id", camp.ID.String()),
		zap.String("organizer", camp.OrganizerEmail))
	return nil
}

// GetByID retrieves a camp by ID
func (r *CampRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Camp, error) {
	query := `SELECT ` + campColumns + ` FROM camps WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	camp, err := scanCamp(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", services.ErrCampNotFound, id)
		}
		return nil, fmt.Errorf("failed to get camp: %w", err)
	}

	return camp, nil
}

// List retrieves camps matching an optional search term, ordered by an
// optional sort key. Unknown sort keys fall back to newest first.
func (r *CampRepository) List(ctx context.Context, search, sort string) ([]*models.Camp, error) {
	query := `SELECT ` + campColumns + ` FROM camps`

	var args []interface{}
	if search != "" {
		query += ` WHERE name ILIKE $1 OR location ILIKE $1 OR healthcare_professional ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	switch sort {
	case "participantCount":
		query += ` ORDER BY participant_count DESC`
	case "fees":
		query += ` ORDER BY fees ASC`
	case "name":
		query += ` ORDER BY name ASC`
	default:
		query += ` ORDER BY created_at DESC`
	}

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query camps: %w", err)
	}
	defer rows.Close()

	var camps []*models.Camp
	for rows.Next() {
		camp, err := scanCamp(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan camp: %w", err)
		}
		camps = append(camps, camp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating camp rows: %w", err)
	}

	return camps, nil
}

// GetByOrganizer retrieves all camps owned by an organizer
func (r *CampRepository) GetByOrganizer(ctx context.Context, email string) ([]*models.Camp, error) {
	query := `SELECT ` + campColumns + ` FROM camps WHERE organizer_email = $1 ORDER BY created_at DESC`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query camps: %w", err)
	}
	defer rows.Close()

	var camps []*models.Camp
	for rows.Next() {
		camp, err := scanCamp(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan camp: %w", err)
		}
		camps = append(camps, camp)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating camp rows: %w", err)
	}

	return camps, nil
}

// Update updates a camp
func (r *CampRepository) Update(ctx context.Context, camp *models.Camp) error {
	query := `
		UPDATE camps
		SET name = $2,
		    image_url = $3,
		    fees = $4,
		    scheduled_at = $5,
		    location = $6,
		    healthcare_professional = $7,
		    description = $8,
		    updated_at = $9
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query,
		camp.ID,
		camp.Name,
		camp.ImageURL,
		camp.Fees,
		camp.ScheduledAt,
		camp.Location,
		camp.HealthcareProfessional,
		camp.Description,
		camp.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update camp: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", services.ErrCampNotFound, camp.ID)
	}

	r.logger.Debug("camp updated", zap.String("id", camp.ID.String()))
	return nil
}

// Delete deletes a camp
func (r *CampRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM camps WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete camp: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", services.ErrCampNotFound, id)
	}

	r.logger.Debug("camp deleted", zap.String("id", id.String()))
	return nil
}

// IncrementParticipantCount atomically adjusts a camp's participant count.
// A single UPDATE avoids the read-modify-write race under concurrent
// registrations.
func (r *CampRepository) IncrementParticipantCount(ctx context.Context, id uuid.UUID, delta int) error {
	query := `
		UPDATE camps
		SET participant_count = participant_count + $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("failed to update participant count: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", services.ErrCampNotFound, id)
	}

	r.logger.Debug("participant count adjusted",
		zap.String("id", id.String()),
		zap.Int("delta", delta))
	return nil
}
