package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/middleware"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/models"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/repositories"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/services"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/utils"
)

// CreateRegistrationRequest represents a camp registration
type CreateRegistrationRequest struct {
	CampID           uuid.UUID `json:"camp_id" validate:"required"`
	ParticipantName  string    `json:"participant_name" validate:"required"`
	Age              int       `json:"age" validate:"gt=0"`
	Phone            string    `json:"phone" validate:"required"`
	Gender           string    `json:"gender" validate:"required"`
	EmergencyContact string    `json:"emergency_contact"`
}

// RegistrationHandler handles registration-related HTTP requests
type RegistrationHandler struct {
	registrations repositories.RegistrationRepository
	camps         repositories.CampRepository
	txManager     repositories.TransactionManager
	logger        *zap.Logger
}

// NewRegistrationHandler creates a new RegistrationHandler
func NewRegistrationHandler(
	registrations repositories.RegistrationRepository,
	camps repositories.CampRepository,
	txManager repositories.TransactionManager,
	logger *zap.Logger,
) *RegistrationHandler {
	return &RegistrationHandler{
		registrations: registrations,
		camps:         camps,
		txManager:     txManager,
		logger:        logger,
	}
}

// HandleCreateRegistration handles POST /registrations/{email}.
// The path email must match the authenticated identity. Registering for
// one's own camp and registering twice are conflicts; the insert and the
// participant-count increment commit together.
func (h *RegistrationHandler) HandleCreateRegistration(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())
	email := chi.URLParam(r, "email")

	if identity != email {
		HandleServiceError(w, services.ErrNotOwner, h.logger)
		return
	}

	var req CreateRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), toDetails(utils.GetValidationFields(err)))
		return
	}

	camp, err := h.camps.GetByID(r.Context(), req.CampID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if camp.IsOwnedBy(identity) {
		HandleServiceError(w, services.ErrSelfRegistration, h.logger)
		return
	}

	exists, err := h.registrations.ExistsForCamp(r.Context(), email, req.CampID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}
	if exists {
		HandleServiceError(w, services.ErrDuplicateRegistration, h.logger)
		return
	}

	now := time.Now()
	reg := &models.Registration{
		ID:                 uuid.New(),
		CampID:             camp.ID,
		CampName:           camp.Name,
		Fees:               camp.Fees,
		ParticipantEmail:   email,
		ParticipantName:    req.ParticipantName,
		Age:                req.Age,
		Phone:              req.Phone,
		Gender:             req.Gender,
		EmergencyContact:   req.EmergencyContact,
		OrganizerEmail:     camp.OrganizerEmail,
		ConfirmationStatus: models.ConfirmationPending,
		PaymentStatus:      models.PaymentUnpaid,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	err = h.txManager.InTransaction(r.Context(), func(ctx context.Context, tx repositories.Transaction) error {
		if err := h.registrations.Create(ctx, reg); err != nil {
			return err
		}
		return h.camps.IncrementParticipantCount(ctx, camp.ID, 1)
	})
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("registration created",
		zap.String("id", reg.ID.String()),
		zap.String("participant", email),
		zap.String("camp_id", camp.ID.String()))

	_ = utils.WriteCreated(w, reg)
}

// HandleListRegistrations handles GET /registrations/{email}?campId=
func (h *RegistrationHandler) HandleListRegistrations(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())
	email := chi.URLParam(r, "email")

	if identity != email {
		HandleServiceError(w, services.ErrNotOwner, h.logger)
		return
	}

	var campID *uuid.UUID
	if campIDStr := r.URL.Query().Get("campId"); campIDStr != "" {
		parsed, err := uuid.Parse(campIDStr)
		if err != nil {
			_ = utils.WriteBadRequest(w, "Invalid campId format", nil)
			return
		}
		campID = &parsed
	}

	regs, err := h.registrations.GetByParticipant(r.Context(), email, campID)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, regs)
}

// HandleDeleteRegistration handles DELETE /registrations/{id}. A
// participant may only remove their own registration; the camp's
// participant count is released in the same transaction.
func (h *RegistrationHandler) HandleDeleteRegistration(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid registration id", nil)
		return
	}

	reg, err := h.registrations.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if !reg.IsOwnedBy(identity) {
		h.logger.Warn("registration deletion denied",
			zap.String("registration_id", id.String()),
			zap.String("identity", identity))
		HandleServiceError(w, services.ErrNotOwner, h.logger)
		return
	}

	if err := h.removeRegistration(r.Context(), reg); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("registration deleted", zap.String("id", id.String()))

	_ = utils.WriteOK(w, map[string]bool{"success": true})
}

// HandleIncrementParticipantCount handles PATCH /registrations-participantCount/{id}.
// Atomically bumps the camp's participant counter.
func (h *RegistrationHandler) HandleIncrementParticipantCount(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid camp id", nil)
		return
	}

	if err := h.camps.IncrementParticipantCount(r.Context(), id, 1); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, map[string]bool{"success": true})
}

// HandleConfirmOrder handles PATCH /order-confirm?id=&status=. Only the
// organizer owning the registration's camp may change its confirmation
// status; a mismatch leaves the record untouched.
func (h *RegistrationHandler) HandleConfirmOrder(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid registration id", nil)
		return
	}

	status := r.URL.Query().Get("status")
	if !models.ValidConfirmationStatus(status) {
		_ = utils.WriteBadRequest(w, "Invalid status value", nil)
		return
	}

	reg, err := h.registrations.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if !reg.IsManagedBy(identity) {
		h.logger.Warn("order confirmation denied",
			zap.String("registration_id", id.String()),
			zap.String("identity", identity),
			zap.String("owner", reg.OrganizerEmail))
		HandleServiceError(w, services.ErrNotOwner, h.logger)
		return
	}

	if err := h.registrations.UpdateConfirmationStatus(r.Context(), id, models.ConfirmationStatus(status)); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("registration confirmation updated",
		zap.String("id", id.String()),
		zap.String("status", status))

	_ = utils.WriteOK(w, map[string]bool{"success": true})
}

// HandleCancelRegistration handles DELETE /cancel-registration?id=. Only
// the organizer owning the registration's camp may cancel it.
func (h *RegistrationHandler) HandleCancelRegistration(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())

	id, err := uuid.Parse(r.URL.Query().Get("id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid registration id", nil)
		return
	}

	reg, err := h.registrations.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if !reg.IsManagedBy(identity) {
		h.logger.Warn("registration cancellation denied",
			zap.String("registration_id", id.String()),
			zap.String("identity", identity),
			zap.String("owner", reg.OrganizerEmail))
		HandleServiceError(w, services.ErrNotOwner, h.logger)
		return
	}

	if err := h.removeRegistration(r.Context(), reg); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("registration cancelled", zap.String("id", id.String()))

	_ = utils.WriteOK(w, map[string]bool{"success": true})
}

// removeRegistration deletes a registration and releases its slot in the
// camp counter within one transaction
func (h *RegistrationHandler) removeRegistration(ctx context.Context, reg *models.Registration) error {
	return h.txManager.InTransaction(ctx, func(ctx context.Context, tx repositories.Transaction) error {
		if err := h.registrations.Delete(ctx, reg.ID); err != nil {
			return err
		}
		return h.camps.IncrementParticipantCount(ctx, reg.CampID, -1)
	})
}
