package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/auth"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/middleware"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/utils"
)

// IssueTokenRequest represents a request to issue a session token
type IssueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// TokenIssuer issues signed session tokens
type TokenIssuer interface {
	Issue(email string) (string, error)
}

// AuthHandler handles token issuance and logout
type AuthHandler struct {
	issuer TokenIssuer
	logger *zap.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(issuer TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		issuer: issuer,
		logger: logger,
	}
}

// HandleIssueToken handles POST /jwt. Signs a token over the posted email
// and binds it to the session cookie. Issuing twice yields two
// independently valid tokens.
func (h *AuthHandler) HandleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req IssueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = utils.WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		_ = utils.WriteBadRequest(w, err.Error(), toDetails(utils.GetValidationFields(err)))
		return
	}

	token, err := h.issuer.Issue(req.Email)
	if err != nil {
		h.logger.Error("failed to issue token",
			zap.String("email", req.Email),
			zap.Error(err))
		_ = utils.WriteInternalServerError(w, "Failed to issue token")
		return
	}

	auth.AttachSession(w, token)

	h.logger.Info("session token issued", zap.String("email", req.Email))

	_ = utils.WriteOK(w, map[string]bool{"success": true})
}

// HandleLogout handles GET /logout. Requires authentication; clears the
// session cookie with the same flag set it was attached with.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	email := middleware.IdentityEmail(r.Context())

	auth.ClearSession(w)

	h.logger.Info("session cleared", zap.String("email", email))

	_ = utils.WriteOK(w, map[string]bool{"success": true})
}

// toDetails converts validation field errors to the response details map
func toDetails(fields map[string]string) map[string]interface{} {
	if len(fields) == 0 {
		return nil
	}
	details := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	return details
}
