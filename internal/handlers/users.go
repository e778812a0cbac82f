package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/middlewares"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/services"
)

// UserLister defines the listing interface of the user service.
type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

// UserDeleter defines the deletion interface of the user service.
type UserDeleter interface {
	Delete(ctx context.Context, id, actingUserID int64) error
}

// NewListUsersHandler returns an HTTP handler listing all users.
// @Summary List users
// @Description Return all users (admin only)
// @Tags users
// @Produce json
// @Success 200 {object} models.Response "Users with count"
// @Failure 403 {object} models.Response "Admin access required"
// @Router /users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, models.Response{Success: false, Error: "Internal server error"})
			return
		}

		writeJSON(w, http.StatusOK, models.Response{
			Success: true,
			Data:    users,
			Count:   len(users),
		})
	}
}

// NewDeleteUserHandler returns an HTTP handler deleting a user by id.
// @Summary Delete user
// @Description Delete a user account (admin only, not your own)
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} models.Response "User deleted"
// @Failure 400 {object} models.Response "Invalid user id"
// @Failure 403 {object} models.Response "Admin cannot delete themselves"
// @Failure 404 {object} models.Response "User not found"
// @Router /users/{id} [delete]
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Invalid user id"})
			return
		}

		acting := middlewares.CurrentUser(r.Context())
		if acting == nil {
			writeJSON(w, http.StatusUnauthorized, models.Response{Success: false, Error: "Authentication required"})
			return
		}

		if err := svc.Delete(r.Context(), id, acting.ID); err != nil {
			switch {
			case errors.Is(err, services.ErrSelfDelete):
				writeJSON(w, http.StatusForbidden, models.Response{Success: false, Error: "Admin cannot delete themselves"})
			case errors.Is(err, services.ErrUserNotFound):
				writeJSON(w, http.StatusNotFound, models.Response{Success: false, Error: "User not found"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.Response{Success: false, Error: "Internal server error"})
			}
			return
		}

		writeJSON(w, http.StatusOK, models.Response{
			Success: true,
			Message: "User deleted successfully",
		})
	}
}
