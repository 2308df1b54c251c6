package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/services"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/utils"
)

// HandleServiceError maps domain errors to HTTP responses. Conflicts map
// to 409 rather than the soft 200-with-message the original frontend
// tolerated.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := services.GetErrorDetails(err)

	switch {
	case services.IsNotFoundError(err):
		if werr := utils.WriteNotFound(w, err.Error()); werr != nil {
			logger.Error("failed to write not found response", zap.Error(werr))
		}

	case services.IsValidationError(err):
		if werr := utils.WriteBadRequest(w, err.Error(), details); werr != nil {
			logger.Error("failed to write bad request response", zap.Error(werr))
		}

	case services.IsUnauthorizedError(err):
		if werr := utils.WriteUnauthorized(w, err.Error()); werr != nil {
			logger.Error("failed to write unauthorized response", zap.Error(werr))
		}

	case services.IsForbiddenError(err):
		if werr := utils.WriteForbidden(w, err.Error()); werr != nil {
			logger.Error("failed to write forbidden response", zap.Error(werr))
		}

	case services.IsConflictError(err):
		if werr := utils.WriteConflict(w, err.Error(), details); werr != nil {
			logger.Error("failed to write conflict response", zap.Error(werr))
		}

	case services.IsExternalError(err):
		// Payment provider failures map to 502 Bad Gateway
		if werr := utils.WriteJSON(w, http.StatusBadGateway, utils.ErrorResponse{
			Error:   "bad_gateway",
			Message: err.Error(),
			Details: details,
		}); werr != nil {
			logger.Error("failed to write bad gateway response", zap.Error(werr))
		}

	case services.IsInternalError(err):
		// Log internal errors but return a generic message
		logger.Error("internal server error", zap.Error(err))
		if werr := utils.WriteInternalServerError(w, "An internal error occurred"); werr != nil {
			logger.Error("failed to write internal error response", zap.Error(werr))
		}

	default:
		logger.Error("unhandled error type",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		if werr := utils.WriteInternalServerError(w, "An unexpected error occurred"); werr != nil {
			logger.Error("failed to write internal error response", zap.Error(werr))
		}
	}
}
