package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/middlewares"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/services"
)

// EventRegistrar defines the interface that the registration service
// must implement for event registration.
type EventRegistrar interface {
	Register(ctx context.Context, eventID uuid.UUID, studentID int64) (*models.Registration, error)
}

// NewRegisterHandler returns an HTTP handler registering the
// authenticated student for an event.
// @Summary Register for event
// @Description Register the current user for an event; at most one registration per student per event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 201 {object} models.Response "Registration created"
// @Failure 400 {object} models.Response "User is not a student"
// @Failure 404 {object} models.Response "Event not found"
// @Failure 409 {object} models.Response "Already registered"
// @Router /events/{id}/register [post]
func NewRegisterHandler(svc EventRegistrar) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Invalid event id"})
			return
		}

		student := middlewares.CurrentUser(r.Context())
		if student == nil {
			writeJSON(w, http.StatusUnauthorized, models.Response{Success: false, Error: "Authentication required"})
			return
		}

		reg, err := svc.Register(r.Context(), eventID, student.ID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEventNotFound):
				writeJSON(w, http.StatusNotFound, models.Response{Success: false, Error: "Event not found"})
			case errors.Is(err, services.ErrInvalidStudent):
				writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "User not found or is not a student"})
			case errors.Is(err, services.ErrAlreadyRegistered):
				writeJSON(w, http.StatusConflict, models.Response{Success: false, Error: "Student is already registered for this event"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.Response{Success: false, Error: "Internal server error"})
			}
			return
		}

		writeJSON(w, http.StatusCreated, models.Response{
			Success: true,
			Message: "Successfully registered for the event",
			Data:    reg,
		})
	}
}
