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

const orderColumns = `id, registration_id, camp_id, camp_name,
	participant_email, amount, currency, transaction_id, status,
	created_at, updated_at`

// OrderRepository implements the repositories.OrderRepository interface
type OrderRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *DB, logger *zap.Logger) repositories.OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

func scanOrder(row interface{ Scan(dest ...interface{}) error }) (*models.Order, error) {
	order := &models.Order{}
	err := row.Scan(
		&order.ID,
		&order.RegistrationID,
		&order.CampID,
		&order.CampName,
		&order.ParticipantEmail,
		&order.Amount,
		&order.Currency,
		&order.TransactionID,
		&order.Status,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Create records a new order
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, registration_id, camp_id, camp_name,
			participant_email, amount, currency, transaction_id, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	executor := GetExecutor(ctx, r.db)
	_, err := executor.ExecContext(ctx, query,
		order.ID,
		order.RegistrationID,
		order.CampID,
		order.CampName,
		order.ParticipantEmail,
		order.Amount,
		order.Currency,
		order.TransactionID,
		order.Status,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug("order created",
		zap.String("id", order.ID.String()),
		zap.String("participant", order.ParticipantEmail))
	return nil
}

// GetByID retrieves an order by ID
func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	executor := GetExecutor(ctx, r.db)
	order, err := scanOrder(executor.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", services.ErrOrderNotFound, id)
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return order, nil
}

// GetByParticipant retrieves a participant's orders, newest first
func (r *OrderRepository) GetByParticipant(ctx context.Context, email string) ([]*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE participant_email = $1 ORDER BY created_at DESC`

	executor := GetExecutor(ctx, r.db)
	rows, err := executor.QueryContext(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", err)
	}

	return orders, nil
}

// UpdateStatus patches the order status field
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $2,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
	`

	executor := GetExecutor(ctx, r.db)
	result, err := executor.ExecContext(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", services.ErrOrderNotFound, id)
	}

	r.logger.Debug("order status updated",
		zap.String("id", id.String()),
		zap.String("status", string(status)))
	return nil
}
