package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/services"
)

// EventUpdater defines the update interface of the event service.
type EventUpdater interface {
	Update(ctx context.Context, eventID uuid.UUID, in services.UpdateEventInput) (*models.Event, error)
}

// UpdateEventRequest represents the JSON body for event update; absent
// fields keep their current value.
// swagger:model UpdateEventRequest
type UpdateEventRequest struct {
	// Title
	Title *string `json:"title"`

	// Event type: WORKSHOP, FEST, SEMINAR or TECH_TALK
	Type *string `json:"type"`

	// Scheduled date/time, RFC 3339
	EventDate *string `json:"event_date"`
}

// NewUpdateEventHandler returns an HTTP handler for event update.
// @Summary Update event
// @Description Patch an event's title, type or date (admin only)
// @Tags events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param updateEventRequest body handlers.UpdateEventRequest true "Event update request"
// @Success 200 {object} models.Response "Event updated"
// @Failure 400 {object} models.Response "Invalid fields"
// @Failure 404 {object} models.Response "Event not found"
// @Router /events/{id} [put]
func NewUpdateEventHandler(svc EventUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Invalid event id"})
			return
		}

		var req UpdateEventRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Invalid request body"})
			return
		}

		event, err := svc.Update(r.Context(), eventID, services.UpdateEventInput{
			Title:     req.Title,
			Type:      req.Type,
			EventDate: req.EventDate,
		})
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidEventType), errors.Is(err, services.ErrInvalidEventDate):
				writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: err.Error()})
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
			Message: "Event updated successfully",
			Data:    event,
		})
	}
}
