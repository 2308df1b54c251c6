package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/models"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/services"
)

var registrationTestColumns = []string{
	"id", "camp_id", "camp_name", "fees", "participant_email",
	"participant_name", "age", "phone", "gender", "emergency_contact",
	"organizer_email", "confirmation_status", "payment_status",
	"created_at", "updated_at",
}

func registrationRow(id, campID uuid.UUID, participant, organizer string) []driverValue {
	now := time.Now()
	return []driverValue{
		id.String(), campID.String(), "Eye Camp", 50.0, participant, "Participant", 30,
		"01700000000", "female", "", organizer, "pending", "unpaid", now, now,
	}
}

func newTestRegistration() *models.Registration {
	now := time.Now()
	return &models.Registration{
		ID:                 uuid.New(),
		CampID:             uuid.New(),
		CampName:           "Eye Camp",
		Fees:               50,
		ParticipantEmail:   "user@example.com",
		ParticipantName:    "Participant",
		Age:                30,
		Phone:              "01700000000",
		Gender:             "female",
		OrganizerEmail:     "org@example.com",
		ConfirmationStatus: models.ConfirmationPending,
		PaymentStatus:      models.PaymentUnpaid,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func TestRegistrationRepository_Create(t *testing.T) {
	t.Run("inserts registration row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRegistrationRepository(db, zap.NewNop())

		reg := newTestRegistration()
		mock.ExpectExec(`(?s)INSERT INTO registrations`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Create(context.Background(), reg)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique pair violation maps to duplicate registration", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRegistrationRepository(db, zap.NewNop())

		mock.ExpectExec(`(?s)INSERT INTO registrations`).
			WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(context.Background(), newTestRegistration())
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrDuplicateRegistration)
	})
}

func TestRegistrationRepository_GetByID(t *testing.T) {
	t.Run("returns not found for unknown id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRegistrationRepository(db, zap.NewNop())

		id := uuid.New()
		mock.ExpectQuery(`(?s)SELECT .+ FROM registrations WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(registrationTestColumns))

		reg, err := repo.GetByID(context.Background(), id)
		require.Error(t, err)
		assert.Nil(t, reg)
		assert.ErrorIs(t, err, services.ErrRegistrationNotFound)
	})
}

func TestRegistrationRepository_GetByParticipant(t *testing.T) {
	t.Run("without camp filter", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRegistrationRepository(db, zap.NewNop())

		mock.ExpectQuery(`(?s)SELECT .+ FROM registrations WHERE participant_email = \$1 ORDER BY created_at DESC`).
			WithArgs("user@example.com").
			WillReturnRows(sqlmock.NewRows(registrationTestColumns).
				AddRow(registrationRow(uuid.New(), uuid.New(), "user@example.com", "org@example.com")...))

		regs, err := repo.GetByParticipant(context.Background(), "user@example.com", nil)
		require.NoError(t, err)
		assert.Len(t, regs, 1)
	})

	t.Run("with camp filter", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRegistrationRepository(db, zap.NewNop())

		campID := uuid.New()
		mock.ExpectQuery(`(?s)SELECT .+ FROM registrations WHERE participant_email = \$1 AND camp_id = \$2`).
			WithArgs("user@example.com", campID).
			WillReturnRows(sqlmock.NewRows(registrationTestColumns))

		regs, err := repo.GetByParticipant(context.Background(), "user@example.com", &campID)
		require.NoError(t, err)
		assert.Empty(t, regs)
	})
}

func TestRegistrationRepository_ExistsForCamp(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepository(db, zap.NewNop())

	campID := uuid.New()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("user@example.com", campID).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsForCamp(context.Background(), "user@example.com", campID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegistrationRepository_UpdateConfirmationStatus(t *testing.T) {
	t.Run("patches status", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRegistrationRepository(db, zap.NewNop())

		id := uuid.New()
		mock.ExpectExec(`(?s)UPDATE registrations.+SET confirmation_status`).
			WithArgs(id, "confirmed").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateConfirmationStatus(context.Background(), id, models.ConfirmationConfirmed)
		assert.NoError(t, err)
	})

	t.Run("missing registration maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewRegistrationRepository(db, zap.NewNop())

		id := uuid.New()
		mock.ExpectExec(`(?s)UPDATE registrations.+SET confirmation_status`).
			WithArgs(id, "confirmed").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateConfirmationStatus(context.Background(), id, models.ConfirmationConfirmed)
		require.Error(t, err)
		assert.ErrorIs(t, err, services.ErrRegistrationNotFound)
	})
}

func TestRegistrationRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRegistrationRepository(db, zap.NewNop())

	id := uuid.New()
	mock.ExpectExec("DELETE FROM registrations").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
