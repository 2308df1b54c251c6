package middleware

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/auth"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/models"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/services"
	"github.com/RuponGomeZ/Medical-Camp-Manage-System-Server/utils"
)

// TokenVerifier defines the interface for verifying session tokens
type TokenVerifier interface {
	// Verify checks a token and returns its claims
	Verify(token string) (*auth.Claims, error)
}

// RoleSource looks up the stored user record for a verified identity.
// The lookup runs fresh on every privileged request; nothing is cached,
// so a revoked role takes effect on the next request.
type RoleSource interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// AuthMiddleware provides the authentication and role authorization gates
type AuthMiddleware struct {
	verifier TokenVerifier
	users    RoleSource
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier TokenVerifier, users RoleSource, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

// RequireAuth is the sole boundary between anonymous and identified
// requests. Missing cookie rejects with 401 before the codec is invoked;
// a present cookie is verified and its claims attached to the request
// context. No role logic happens here.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := chimw.GetReqID(ctx)

		cookie, err := r.Cookie(auth.SessionCookieName)
		if err != nil || cookie.Value == "" {
			m.logger.Warn("missing session cookie",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Unauthorized access")
			return
		}

		claims, err := m.verifier.Verify(cookie.Value)
		if err != nil {
			m.logger.Warn("token verification failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteUnauthorized(w, "Unauthorized access")
			return
		}

		ctx = WithClaims(ctx, claims)

		m.logger.Debug("authentication successful",
			zap.String("request_id", requestID),
			zap.String("email", claims.Email))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireOrganizer rejects authenticated identities whose stored role is
// not organizer. Must run after RequireAuth; composes with it rather than
// replacing it. Applied uniformly to every mutating owner-scoped route.
func (m *AuthMiddleware) RequireOrganizer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := chimw.GetReqID(ctx)

		claims := GetClaimsFromContext(ctx)
		if claims == nil {
			m.logger.Error("claims not found in context",
				zap.String("request_id", requestID))
			_ = utils.WriteUnauthorized(w, "Authentication required")
			return
		}

		user, err := m.users.GetByEmail(ctx, claims.Email)
		if err != nil {
			if services.IsNotFoundError(err) {
				m.logger.Warn("no user record for authenticated identity",
					zap.String("request_id", requestID),
					zap.String("email", claims.Email))
				_ = utils.WriteForbidden(w, "Forbidden access")
				return
			}
			m.logger.Error("role lookup failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteInternalServerError(w, "Failed to verify role")
			return
		}

		if !user.IsOrganizer() {
			m.logger.Warn("insufficient role",
				zap.String("request_id", requestID),
				zap.String("email", claims.Email),
				zap.String("role", string(user.Role)))
			_ = utils.WriteForbidden(w, "Forbidden access")
			return
		}

		m.logger.Debug("role check passed",
			zap.String("request_id", requestID),
			zap.String("email", claims.Email))

		next.ServeHTTP(w, r)
	})
}
