package middlewares

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/campusops/college-events/internal/jwt"
	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
)

// Tokener defines the minimal token interface needed by the middleware.
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	Validate(ctx context.Context, tokenString string, expected jwt.TokenType) (*jwt.Claims, error)
}

// UserResolver resolves the acting user by the id claimed in the token.
type UserResolver interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type contextKey struct{}

var currentUserKey = contextKey{}

// CurrentUser returns the authenticated user attached to the request
// context, or nil outside the auth middleware.
func CurrentUser(ctx context.Context) *models.User {
	user, _ := ctx.Value(currentUserKey).(*models.User)
	return user
}

// WithUser returns a context carrying the given user the same way
// AuthMiddleware attaches it.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// AuthMiddleware validates the access token on every protected request
// and attaches the resolved user to the request context. A token whose
// subject no longer exists or was deactivated after issuance is
// rejected.
func AuthMiddleware(tokener Tokener, users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				logger.Log.Infow("authentication failed", "err", err)
				writeError(w, http.StatusUnauthorized, "Authentication token is missing")
				return
			}

			claims, err := tokener.Validate(ctx, tokenString, jwt.TokenTypeAccess)
			if err != nil {
				logger.Log.Infow("authentication failed", "err", err)
				switch err {
				case jwt.ErrTokenExpired:
					writeError(w, http.StatusUnauthorized, "Token has expired")
				case jwt.ErrWrongTokenType:
					writeError(w, http.StatusUnauthorized, "Invalid token type")
				default:
					writeError(w, http.StatusUnauthorized, "Invalid token")
				}
				return
			}

			user, err := users.GetByID(ctx, claims.UserID)
			if err != nil {
				logger.Log.Errorw("failed to resolve user", "user_id", claims.UserID, "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if user == nil || !user.IsActive {
				writeError(w, http.StatusUnauthorized, "User not found or inactive")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
		})
	}
}

// AdminMiddleware rejects authenticated non-admin users. It must be
// mounted after AuthMiddleware: authentication precedes authorization.
func AdminMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r.Context())
			if user == nil {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !user.IsAdmin() {
				logger.Log.Infow("admin access denied", "user_id", user.ID, "role", user.Role)
				writeError(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.Response{Success: false, Error: msg})
}
