package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusops/college-events/internal/jwt"
	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/services"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, identifier, password string) (*models.User, string, string, error)
}

// LoginRequest represents the JSON body for user login. Username may
// also be an email address.
// swagger:model LoginRequest
type LoginRequest struct {
	// Username or email
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"required"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required"`
}

// NewLoginHandler returns an HTTP handler for user login.
// @Summary User login
// @Description Authenticate by username or email, set access/refresh token cookies and return the user
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login Request"
// @Success 200 {object} models.Response "Login successful"
// @Failure 400 {object} models.Response "Missing username or password"
// @Failure 401 {object} models.Response "Invalid credentials"
// @Failure 403 {object} models.Response "Account is inactive"
// @Router /users/login [post]
func NewLoginHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Invalid request body"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Username and password are required"})
			return
		}

		user, accessToken, refreshToken, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeJSON(w, http.StatusUnauthorized, models.Response{Success: false, Error: "Invalid credentials"})
			case errors.Is(err, services.ErrInactiveAccount):
				writeJSON(w, http.StatusForbidden, models.Response{Success: false, Error: "Account is inactive"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.Response{Success: false, Error: "Internal server error"})
			}
			return
		}

		setTokenCookie(w, jwt.AccessTokenCookie, accessToken)
		setTokenCookie(w, jwt.RefreshTokenCookie, refreshToken)

		writeJSON(w, http.StatusOK, models.Response{
			Success: true,
			Message: "Login successful",
			Data:    map[string]any{"user": user},
		})
	}
}
