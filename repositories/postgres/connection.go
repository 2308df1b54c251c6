package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/config"
)

// DB wraps the sql.DB connection pool
type DB struct {
	*sql.DB
	logger *zap.Logger
}

// NewDB creates a new database connection pool
func NewDB(cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	dsn := cfg.DSN()

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))

	return &DB{
		DB:     db,
		logger: logger,
	}, nil
}

// Close closes the database connection pool
func (db *DB) Close() error {
	db.logger.Info("closing database connection")
	return db.DB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	var result int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&result); err != nil {
		return fmt.Errorf("database query check failed: %w", err)
	}

	return nil
}

// Stats returns database connection pool statistics
func (db *DB) Stats() sql.DBStats {
	return db.DB.Stats()
}

// InitSchema initializes the database schema
func (db *DB) InitSchema(ctx context.Context) error {
	schema := `
		-- Users table
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			photo_url TEXT NOT NULL DEFAULT '',
			role VARCHAR(50) NOT NULL DEFAULT 'participant',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Camps table
		CREATE TABLE IF NOT EXISTS camps (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			fees DECIMAL(10, 2) NOT NULL DEFAULT 0,
			scheduled_at TIMESTAMP NOT NULL,
			location VARCHAR(255) NOT NULL,
			healthcare_professional VARCHAR(255) NOT NULL,
			participant_count INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			organizer_email VARCHAR(255) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Registrations table. The unique pair backs duplicate detection
		-- under concurrent registration attempts.
		CREATE TABLE IF NOT EXISTS registrations (
			id UUID PRIMARY KEY,
			camp_id UUID NOT NULL REFERENCES camps(id) ON DELETE CASCADE,
			camp_name VARCHAR(255) NOT NULL,
			fees DECIMAL(10, 2) NOT NULL DEFAULT 0,
			participant_email VARCHAR(255) NOT NULL,
			participant_name VARCHAR(255) NOT NULL,
			age INTEGER NOT NULL DEFAULT 0,
			phone VARCHAR(50) NOT NULL DEFAULT '',
			gender VARCHAR(50) NOT NULL DEFAULT '',
			emergency_contact VARCHAR(255) NOT NULL DEFAULT '',
			organizer_email VARCHAR(255) NOT NULL,
			confirmation_status VARCHAR(50) NOT NULL DEFAULT 'pending',
			payment_status VARCHAR(50) NOT NULL DEFAULT 'unpaid',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(participant_email, camp_id)
		);

		-- Feedbacks table
		CREATE TABLE IF NOT EXISTS feedbacks (
			id UUID PRIMARY KEY,
			camp_id UUID NOT NULL,
			camp_name VARCHAR(255) NOT NULL,
			participant_email VARCHAR(255) NOT NULL,
			participant_name VARCHAR(255) NOT NULL,
			rating INTEGER NOT NULL,
			comment TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Orders table
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			registration_id UUID NOT NULL REFERENCES registrations(id) ON DELETE CASCADE,
			camp_id UUID NOT NULL,
			camp_name VARCHAR(255) NOT NULL,
			participant_email VARCHAR(255) NOT NULL,
			amount BIGINT NOT NULL,
			currency VARCHAR(10) NOT NULL,
			transaction_id VARCHAR(255) NOT NULL DEFAULT '',
			status VARCHAR(50) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		-- Indexes for performance
		CREATE INDEX IF NOT EXISTS idx_camps_organizer_email ON camps(organizer_email);
		CREATE INDEX IF NOT EXISTS idx_camps_scheduled_at ON camps(scheduled_at);
		CREATE INDEX IF NOT EXISTS idx_registrations_camp_id ON registrations(camp_id);
		CREATE INDEX IF NOT EXISTS idx_registrations_participant_email ON registrations(participant_email);
		CREATE INDEX IF NOT EXISTS idx_registrations_organizer_email ON registrations(organizer_email);
		CREATE INDEX IF NOT EXISTS idx_feedbacks_camp_id ON feedbacks(camp_id);
		CREATE INDEX IF NOT EXISTS idx_orders_participant_email ON orders(participant_email);
		CREATE INDEX IF NOT EXISTS idx_orders_registration_id ON orders(registration_id);
	`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	db.logger.Info("database schema initialized successfully")
	return nil
}
