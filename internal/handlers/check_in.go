package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/services"
)

// AttendanceMarker defines the check-in interface of the registration
// service.
type AttendanceMarker interface {
	MarkAttendance(ctx context.Context, registrationID uuid.UUID) (*models.Registration, error)
}

// NewCheckInHandler returns an HTTP handler marking a registration as
// attended. Re-marking an attended registration is a no-op in effect.
// @Summary Mark attendance
// @Description Mark a student's registration as attended (admin check-in)
// @Tags events
// @Produce json
// @Param id path string true "Registration ID"
// @Success 200 {object} models.Response "Attendance marked"
// @Failure 404 {object} models.Response "Registration not found"
// @Router /events/registrations/{id}/check-in [post]
func NewCheckInHandler(svc AttendanceMarker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		registrationID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Invalid registration id"})
			return
		}

		reg, err := svc.MarkAttendance(r.Context(), registrationID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrRegistrationNotFound):
				writeJSON(w, http.StatusNotFound, models.Response{Success: false, Error: "Registration not found"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.Response{Success: false, Error: "Internal server error"})
			}
			return
		}

		writeJSON(w, http.StatusOK, models.Response{
			Success: true,
			Message: "Attendance marked successfully",
			Data:    reg,
		})
	}
}
