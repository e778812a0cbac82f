package handlers

import (
	"net/http"

	"github.com/campusops/college-events/internal/middlewares"
	"github.com/campusops/college-events/internal/models"
)

// NewProfileHandler returns an HTTP handler serving the authenticated
// user's own profile.
// @Summary Current user profile
// @Description Return the profile of the authenticated user
// @Tags users
// @Produce json
// @Success 200 {object} models.Response "Current user"
// @Failure 401 {object} models.Response "Not authenticated"
// @Router /users/profile [get]
func NewProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.CurrentUser(r.Context())
		if user == nil {
			writeJSON(w, http.StatusUnauthorized, models.Response{Success: false, Error: "Authentication required"})
			return
		}

		writeJSON(w, http.StatusOK, models.Response{
			Success: true,
			Data:    user,
		})
	}
}
