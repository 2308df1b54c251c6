package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/models"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/repositories"
)

// FeedbackRepository implements the repositories.FeedbackRepository interface
type FeedbackRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewFeedbackRepository creates a new feedback repository
func NewFeedbackRepository(db *DB, logger *zap.Logger) repositories.FeedbackRepository {
	return &FeedbackRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new feedback entry
func (r *FeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	query := `
		INSERT INTO feedbacks (id, camp_id, camp_name, participant_email,
			participant_name, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		fb.ID,
		fb.CampID,
		fb.CampName,
		fb.ParticipantEmail,
		fb.ParticipantName,
		fb.Rating,
		fb.Comment,
		fb.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	r.logger.Debug("feedback created",
		zap.String("id", fb.ID.String()),
		zap.String("participant", fb.ParticipantEmail))
	return nil
}

// List retrieves all feedback entries, newest first
func (r *FeedbackRepository) List(ctx context.Context) ([]*models.Feedback, error) {
	query := `
		SELECT id, camp_id, camp_name, participant_email, participant_name,
			rating, comment, created_at
		FROM feedbacks
		ORDER BY created_at DESC
	`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedbacks: %w", err)
	}
	defer rows.Close()

	var feedbacks []*models.Feedback
	for rows.Next() {
		fb := &models.Feedback{}
		err := rows.Scan(
			&fb.ID,
			&fb.CampID,
			&fb.CampName,
			&fb.ParticipantEmail,
			&fb.ParticipantName,
			&fb.Rating,
			&fb.Comment,
			&fb.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedbacks = append(feedbacks, fb)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feedback rows: %w", err)
	}

	return feedbacks, nil
}
