package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/models"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/repositories"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/services"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/utils"
)

// CreateUserRequest represents a first-login user registration
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	PhotoURL string `json:"photo_url"`
}

// UpdateUserRequest represents a patch to a user's profile fields
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users repositories.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		users:  users,
		logger: logger,
	}
}

// HandleCreateUser handles POST /users. Creates the user record on first
// login with the default participant role; a duplicate email is a conflict.
func (h *UserHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), toDetails(utils.GetValidationFields(err)))
		return
	}

	if _, err := h.users.GetByEmail(r.Context(), req.Email); err == nil {
		HandleServiceError(w, services.ErrDuplicateUser, h.logger)
		return
	} else if !services.IsNotFoundError(err) {
		HandleServiceError(w, err, h.logger)
		return
	}

	user := models.NewUser(req.Email, req.Name, req.PhotoURL)
	if err := h.users.Create(r.Context(), user); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("user created", zap.String("email", user.Email))

	_ = utils.WriteCreated(w, user)
}

// HandleListUsers handles GET /users
func (h *UserHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, users)
}

// HandleGetUserByEmail handles GET /users/{email}
func (h *UserHandler) HandleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if err := utils.ValidateEmail(email); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid email format", nil)
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	_ = utils.WriteOK(w, user)
}

// HandleUpdateUser handles PATCH /users/{id}. Only profile fields are
// patchable; the role field is never elevated here.
func (h *UserHandler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		_ = utils.WriteBadRequest(w, "Invalid user id", nil)
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	user, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.PhotoURL != nil {
		user.PhotoURL = *req.PhotoURL
	}
	user.UpdatedAt = time.Now()

	if err := h.users.Update(r.Context(), user); err != nil {
		HandleServiceError(w, err, h.logger)
		return
	}

	h.logger.Info("user updated", zap.String("id", id.String()))

	_ = utils.WriteOK(w, user)
}
