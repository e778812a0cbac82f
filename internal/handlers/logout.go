package handlers

import (
	"net/http"

	"github.com/campusops/college-events/internal/jwt"
	"github.com/campusops/college-events/internal/models"
)

// NewLogoutHandler returns an HTTP handler for logout. Logout only
// clears the token cookies; issued tokens stay valid until natural
// expiry since there is no server-side revocation.
// @Summary User logout
// @Description Clear the access and refresh token cookies
// @Tags auth
// @Produce json
// @Success 200 {object} models.Response "Logout successful"
// @Failure 401 {object} models.Response "Not authenticated"
// @Router /users/logout [post]
func NewLogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clearTokenCookie(w, jwt.AccessTokenCookie)
		clearTokenCookie(w, jwt.RefreshTokenCookie)

		writeJSON(w, http.StatusOK, models.Response{
			Success: true,
			Message: "Logout successful",
		})
	}
}
