package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/middleware"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/models"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/repositories"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/utils"
)

// CreateFeedbackRequest represents a feedback submission
type CreateFeedbackRequest struct {
	CampID          uuid.UUID `json:"camp_id" validate:"required"`
	CampName        string    `json:"camp_name" validate:"required"`
	ParticipantName string    `json:"participant_name" validate:"required"`
	Rating          int       `json:"rating" validate:"required,min=1,max=5"`
	Comment         string    `json:"comment"`
}

// FeedbackHandler handles feedback-related HTTP requests
type FeedbackHandler struct {
	feedbacks repositories.FeedbackRepository
	logger    *zap.Logger
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedbacks repositories.FeedbackRepository, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{feedbacks: feedbacks, logger: logger}
}

// HandlePostFeedback handles POST /feedback. The participant email is
// taken from the session, not the body.
func (h *FeedbackHandler) HandlePostFeedback(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityEmail(r.Context())

	var req CreateFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), toDetails(utils.GetValidationFields(err)))
		return
	}

	fb := &models.Feedback{
		ID:               uuid.New(),
		CampID:           req.CampID,
		CampName:         req.CampName,
		ParticipantEmail: identity,
		ParticipantName:  req.ParticipantName,
		Rating:           req.Rating,
		Comment:          req.Comment,
		CreatedAt:        time.Now(),
	}

	if err := h.feedbacks.Create(r.Context(), fb); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("feedback created",
		zap.String("id", fb.ID.String()),
		zap.String("camp_id", fb.CampID.String()),
		zap.Int("rating", fb.Rating))

	_ = utils.WriteCreated(w, fb)
}

// HandleListFeedback handles GET /feedback
func (h *FeedbackHandler) HandleListFeedback(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.feedbacks.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, feedbacks)
}
