package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/repositories/postgres"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/utils"
)

// HealthHandler handles liveness and readiness probes
type HealthHandler struct {
	db     *postgres.DB
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *postgres.DB, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// HandleHealth handles GET /healthz
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	_ = utils.WriteOK(w, map[string]string{"status": "ok"})
}

// HandleReadiness handles GET /readyz. Reports not ready until the
// database answers.
func (h *HealthHandler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	if h.db == nil {
		_ = utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	if err := h.db.HealthCheck(r.Context()); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		_ = utils.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	_ = utils.WriteOK(w, map[string]string{"status": "ready"})
}
