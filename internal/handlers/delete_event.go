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

// EventDeleter defines the deletion interface of the event service.
type EventDeleter interface {
	Delete(ctx context.Context, eventID uuid.UUID) error
}

// NewDeleteEventHandler returns an HTTP handler for event deletion.
// Deleting an event cascades to all its registrations.
// @Summary Delete event
// @Description Delete an event and all its registrations (admin only)
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} models.Response "Event deleted"
// @Failure 404 {object} models.Response "Event not found"
// @Router /events/{id} [delete]
func NewDeleteEventHandler(svc EventDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Invalid event id"})
			return
		}

		if err := svc.Delete(r.Context(), eventID); err != nil {
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
			Message: "Event deleted successfully",
		})
	}
}
