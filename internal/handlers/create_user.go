package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/services"
)

// UserCreator defines the interface that the user service must implement.
type UserCreator interface {
	Create(ctx context.Context, in services.CreateUserInput) (*models.User, error)
}

// CreateUserRequest represents the JSON body for user creation
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// Username
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"required"`

	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required,email"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required"`

	// Full name
	// required: true
	// default: John Doe
	FullName string `json:"full_name" validate:"required"`

	// Role, defaults to USER
	// default: USER
	Role string `json:"role"`

	// College name, created on first use
	// default: Tech Institute
	CollegeName string `json:"college_name"`
}

// NewCreateUserHandler returns an HTTP handler for user creation.
// @Summary Create a new user
// @Description Creates a user account; the referenced college is created on first use. Password is hashed with bcrypt before storing.
// @Tags users
// @Accept json
// @Produce json
// @Param createUserRequest body handlers.CreateUserRequest true "User creation request"
// @Success 201 {object} models.Response "User created"
// @Failure 400 {object} models.Response "Missing or invalid fields"
// @Failure 409 {object} models.Response "Username or email already exists"
// @Router /users [post]
func NewCreateUserHandler(svc UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Invalid request body"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Missing or invalid required fields"})
			return
		}

		user, err := svc.Create(r.Context(), services.CreateUserInput{
			Username:    req.Username,
			Email:       req.Email,
			Password:    req.Password,
			FullName:    req.FullName,
			Role:        req.Role,
			CollegeName: req.CollegeName,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidRole):
				writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Invalid role provided. Must be USER or ADMIN."})
			case errors.Is(err, services.ErrUserAlreadyExists):
				writeJSON(w, http.StatusConflict, models.Response{Success: false, Error: "Username or email already exists"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.Response{Success: false, Error: "Internal server error"})
			}
			return
		}

		writeJSON(w, http.StatusCreated, models.Response{
			Success: true,
			Message: "User created successfully",
			Data:    user,
		})
	}
}
