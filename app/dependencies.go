package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/auth"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/config"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/middleware"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/repositories"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/repositories/postgres"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/services/payments"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repository Factory
	RepoFactory *postgres.RepositoryFactory

	// Repositories
	Repos     *repositories.Repositories
	TxManager repositories.TransactionManager

	// Auth
	TokenCodec     *auth.TokenCodec
	AuthMiddleware *middleware.AuthMiddleware

	// Payments
	Payments payments.Provider
}

// NewDependencies creates and wires up all application dependencies.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := deps.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	deps.initAuth(cfg)
	deps.initPayments(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the PostgreSQL database connection and factory
func (d *Dependencies) initDatabase(ctx context.Context, cfg *config.Config) error {
	factory, err := postgres.NewRepositoryFactory(cfg, d.Logger)
	if err != nil {
		return fmt.Errorf("failed to create repository factory: %w", err)
	}

	d.RepoFactory = factory
	d.DB = factory.GetDB()

	if err := d.DB.HealthCheck(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if err := d.DB.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	d.Logger.Info("database connection established",
		zap.String("connection", cfg.Database.LogString()))

	return nil
}

// initRepositories initializes all repository instances
func (d *Dependencies) initRepositories() error {
	d.Repos = d.RepoFactory.NewRepositories()
	d.TxManager = d.RepoFactory.GetTransactionManager()

	d.Logger.Info("repositories initialized")
	return nil
}

// initAuth wires the token codec and the session middleware. The
// organizer gate reads the role from the store on every request.
func (d *Dependencies) initAuth(cfg *config.Config) {
	d.TokenCodec = auth.NewTokenCodec(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	d.AuthMiddleware = middleware.NewAuthMiddleware(d.TokenCodec, d.Repos.Users, d.Logger)
	d.Logger.Info("auth initialized")
}

func (d *Dependencies) initPayments(cfg *config.Config) {
	if cfg.Payment.SecretKey == "" {
		d.Logger.Warn("payment provider not configured, payment intents will fail")
	}
	d.Payments = payments.NewStripeProvider(cfg.Payment, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.RepoFactory != nil {
		if err := d.RepoFactory.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		} else {
			d.Logger.Info("database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
