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

// EventGetter defines the single-event interface of the event service.
type EventGetter interface {
	Get(ctx context.Context, eventID uuid.UUID, includeRegistrations bool) (*models.Event, error)
}

// NewGetEventHandler returns an HTTP handler serving a single event.
// Admin callers additionally see the event's registrations.
// @Summary Get event
// @Description Return event details; registrations included for admins
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.Response "Event details"
// @Failure 404 {object} models.Response "Event not found"
// @Router /events/{id} [get]
func NewGetEventHandler(svc EventGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Invalid event id"})
			return
		}

		includeRegistrations := false
		if user := middlewares.CurrentUser(r.Context()); user != nil {
			includeRegistrations = user.IsAdmin()
		}

		event, err := svc.Get(r.Context(), eventID, includeRegistrations)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEventNotFound):
				writeJSON(w, http.StatusNotFound, models.Response{Success: false, Error: "Event not found"})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.Response{Success: false, Error: "Internal server error"})
			}
			return
		}

		writeJSON(w, http.StatusOK, models.Response{
			Success: true,
			Data:    event,
		})
	}
}
