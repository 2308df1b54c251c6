package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/auth"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/middleware"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/models"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/repositories"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// MockCampRepository is a mock implementation of CampRepository
type MockCampRepository struct {
	mock.Mock
}

func (m *MockCampRepository) Create(ctx context.Context, camp *models.Camp) error {
	args := m.Called(ctx, camp)
	return args.Error(0)
}

func (m *MockCampRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Camp, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Camp), args.Error(1)
}

func (m *MockCampRepository) List(ctx context.Context, search, sort string) ([]*models.Camp, error) {
	args := m.Called(ctx, search, sort)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Camp), args.Error(1)
}

func (m *MockCampRepository) GetByOrganizer(ctx context.Context, email string) ([]*models.Camp, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Camp), args.Error(1)
}

func (m *MockCampRepository) Update(ctx context.Context, camp *models.Camp) error {
	args := m.Called(ctx, camp)
	return args.Error(0)
}

func (m *MockCampRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCampRepository) IncrementParticipantCount(ctx context.Context, id uuid.UUID, delta int) error {
	args := m.Called(ctx, id, delta)
	return args.Error(0)
}

// MockRegistrationRepository is a mock implementation of RegistrationRepository
type MockRegistrationRepository struct {
	mock.Mock
}

func (m *MockRegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	args := m.Called(ctx, reg)
	return args.Error(0)
}

func (m *MockRegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Registration, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) GetByParticipant(ctx context.Context, email string, campID *uuid.UUID) ([]*models.Registration, error) {
	args := m.Called(ctx, email, campID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Registration), args.Error(1)
}

func (m *MockRegistrationRepository) ExistsForCamp(ctx context.Context, email string, campID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, campID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrationRepository) UpdateConfirmationStatus(ctx context.Context, id uuid.UUID, status models.ConfirmationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRegistrationRepository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockRegistrationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFeedbackRepository is a mock implementation of FeedbackRepository
type MockFeedbackRepository struct {
	mock.Mock
}

func (m *MockFeedbackRepository) Create(ctx context.Context, fb *models.Feedback) error {
	args := m.Called(ctx, fb)
	return args.Error(0)
}

func (m *MockFeedbackRepository) List(ctx context.Context) ([]*models.Feedback, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Feedback), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByParticipant(ctx context.Context, email string) ([]*models.Order, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// passthroughTxManager executes the transactional function inline so
// handler tests can observe the repository calls made inside it.
type passthroughTxManager struct{}

func (passthroughTxManager) Begin(ctx context.Context) (repositories.Transaction, error) {
	return nil, nil
}

func (passthroughTxManager) InTransaction(ctx context.Context, fn func(ctx context.Context, tx repositories.Transaction) error) error {
	return fn(ctx, nil)
}

// withIdentity attaches identity claims to the request, mimicking what
// RequireAuth does after verifying the session cookie.
func withIdentity(req *http.Request, email string) *http.Request {
	ctx := middleware.WithClaims(req.Context(), &auth.Claims{Email: email})
	return req.WithContext(ctx)
}

// withURLParams attaches chi route parameters to the request context
func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}
