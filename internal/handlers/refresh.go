package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/campusops/college-events/internal/jwt"
	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/services"
)

// Refresher defines the interface that the refresh service must implement.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// RefreshRequest represents the JSON body for token refresh. The token
// may alternatively be supplied via the refresh_token cookie.
// swagger:model RefreshRequest
type RefreshRequest struct {
	// Refresh token
	// default: JWT_REFRESH_TOKEN
	RefreshToken string `json:"refresh_token"`
}

// NewRefreshHandler returns an HTTP handler that mints a new access
// token from a refresh token.
// @Summary Refresh access token
// @Description Exchange a valid refresh token (body or cookie) for a new access token
// @Tags auth
// @Accept json
// @Produce json
// @Param refreshRequest body handlers.RefreshRequest false "Refresh Request"
// @Success 200 {object} models.Response "New access token"
// @Failure 400 {object} models.Response "Refresh token is required"
// @Failure 401 {object} models.Response "Expired or invalid refresh token"
// @Router /users/refresh [post]
func NewRefreshHandler(svc Refresher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RefreshRequest
		// Body is optional when the cookie is present.
		_ = json.NewDecoder(r.Body).Decode(&req)

		token := strings.TrimSpace(req.RefreshToken)
		if token == "" {
			if c, err := r.Cookie(jwt.RefreshTokenCookie); err == nil {
				token = strings.TrimSpace(c.Value)
			}
		}
		if token == "" {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Refresh token is required"})
			return
		}

		accessToken, err := svc.Refresh(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, jwt.ErrTokenExpired):
				writeJSON(w, http.StatusUnauthorized, models.Response{Success: false, Error: "Refresh token has expired"})
			case errors.Is(err, jwt.ErrWrongTokenType), errors.Is(err, jwt.ErrTokenMalformed):
				writeJSON(w, http.StatusUnauthorized, models.Response{Success: false, Error: "Invalid refresh token"})
			case errors.Is(err, services.ErrUserNotFound), errors.Is(err, services.ErrInactiveAccount):
				writeJSON(w, http.StatusUnauthorized, models.Response{Success: false, Error: "User not found or inactive"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.Response{Success: false, Error: "Internal server error"})
			}
			return
		}

		setTokenCookie(w, jwt.AccessTokenCookie, accessToken)

		writeJSON(w, http.StatusOK, models.Response{
			Success: true,
			Data:    map[string]any{"access_token": accessToken},
		})
	}
}
