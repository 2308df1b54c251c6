package handlers

import (
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

// CreateCampRequest represents a request to create a camp
type CreateCampRequest struct {
	Name                   string    `json:"name" validate:"required"`
	ImageURL               string    `json:"image_url"`
	Fees                   float64   `json:"fees" validate:"gte=0"`
	ScheduledAt            time.Time `json:"scheduled_at" validate:"required"`
	Location               string    `json:"location" validate:"required"`
	HealthcareProfessional string    `json:"healthcare_professional" validate:"required"`
	Description            string    `json:"description"`
}

// UpdateCampRequest represents a patch to a camp's fields
type UpdateCampRequest struct {
	Name                   *string    `json:"name,omitempty"`
	ImageURL               *string    `json:"image_url,omitempty"`
	Fees                   *float64   `json:"fees,omitempty" validate:"omitempty,gte=0"`
	ScheduledAt            *time.Time `json:"scheduled_at,omitempty"`
	Location               *string    `json:"location,omitempty"`
	HealthcareProfessional *string    `json:"healthcare_professional,omitempty"`
	Description            *string    `json:"description,omitempty"`
}

// CampHandler handles camp-related HTTP requests
type CampHandler struct {
	camps  repositories.CampRepository
	logger *zap.Logger
}

// NewCampHandler creates a new CampHandler
func NewCampHandler(camps repositories.CampRepository, logger *zap.Logger) *CampHandler {
	return &CampHandler{
		camps:  camps,
		logger: logger,
	}
}

// HandleAddCamp handles POST /addCamp. The authenticated organizer becomes
// the camp owner; the owner field is never taken from the request body.
func (h *CampHandler) HandleAddCamp(w http.ResponseWriter, r *http.Request) {
	email := middleware.IdentityEmail(r.Context())

	var req CreateCampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), toDetails(utils.GetValidationFields(err)))
		return
	}

	now := time.Now()
	camp := &models.Camp{
		ID:                     uuid.New(),
		Name:                   req.Name,
		ImageURL:               req.ImageURL,
		Fees:                   req.Fees,
		ScheduledAt:            req.ScheduledAt,
		Location:               req.Location,
		HealthcareProfessional: req.HealthcareProfessional,
		ParticipantCount:       0,
		Description:            req.Description,
		OrganizerEmail:         email,
		CreatedAt:              now,
		UpdatedAt:              now,
	}

	if err := h.camps.Create(r.Context(), camp); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("camp created",
		zap.String("id", camp.ID.String()),
		zap.String("organizer", email))

	_ = utils.WriteCreated(w, camp)
}

// HandleListCamps handles GET /camps?search=&sort=
func (h *CampHandler) HandleListCamps(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	sort := r.URL.Query().Get("sort")

	camps, err := h.camps.List(r.Context(), search, sort)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, camps)
}

// HandleCampDetails handles GET /camp-details/{id}
func (h *CampHandler) HandleCampDetails(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid camp id", nil)
		return
	}

	camp, err := h.camps.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, camp)
}

// HandleManageCamps handles GET /manage-camp/{email}. Organizers can only
// list their own camps.
func (h *CampHandler) HandleManageCamps(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())
	email := chi.URLParam(r, "email")

	if identity != email {
		HandleServiceError(w, services.ErrNotOwner, h.logger)
		return
	}

	camps, err := h.camps.GetByOrganizer(r.Context(), email)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, camps)
}

// HandleUpdateCamp handles PATCH /update-camp/{campId}. Fetches the camp,
// verifies the authenticated identity owns it, then applies the patch.
func (h *CampHandler) HandleUpdateCamp(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "campId"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid camp id", nil)
		return
	}

	var req UpdateCampRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), toDetails(utils.GetValidationFields(err)))
		return
	}

	camp, err := h.camps.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if !camp.IsOwnedBy(identity) {
		h.logger.Warn("camp mutation denied",
			zap.String("camp_id", id.String()),
			zap.String("identity", identity),
			zap.String("owner", camp.OrganizerEmail))
		HandleServiceError(w, services.ErrNotOwner, h.logger)
		return
	}

	if req.Name != nil {
		camp.Name = *req.Name
	}
	if req.ImageURL != nil {
		camp.ImageURL = *req.ImageURL
	}
	if req.Fees != nil {
		camp.Fees = *req.Fees
	}
	if req.ScheduledAt != nil {
		camp.ScheduledAt = *req.ScheduledAt
	}
	if req.Location != nil {
		camp.Location = *req.Location
	}
	if req.HealthcareProfessional != nil {
		camp.HealthcareProfessional = *req.HealthcareProfessional
	}
	if req.Description != nil {
		camp.Description = *req.Description
	}
	camp.UpdatedAt = time.Now()

	if err := h.camps.Update(r.Context(), camp); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("camp updated", zap.String("id", id.String()))

	_ = utils.WriteOK(w, camp)
}

// HandleDeleteCamp handles DELETE /delete-camp/{campId}
func (h *CampHandler) HandleDeleteCamp(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "campId"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid camp id", nil)
		return
	}

	camp, err := h.camps.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if !camp.IsOwnedBy(identity) {
		h.logger.Warn("camp deletion denied",
			zap.String("camp_id", id.String()),
			zap.String("identity", identity),
			zap.String("owner", camp.OrganizerEmail))
		HandleServiceError(w, services.ErrNotOwner, h.logger)
		return
	}

	if err := h.camps.Delete(r.Context(), id); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("camp deleted", zap.String("id", id.String()))

	_ = utils.WriteOK(w, map[string]bool{"success": true})
}
