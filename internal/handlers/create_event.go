package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/middlewares"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/services"
)

// EventCreator defines the creation interface of the event service.
type EventCreator interface {
	Create(ctx context.Context, in services.CreateEventInput, createdBy int64) (*models.Event, error)
}

// CreateEventRequest represents the JSON body for event creation
// swagger:model CreateEventRequest
type CreateEventRequest struct {
	// Title
	// required: true
	// default: AI Workshop
	Title string `json:"title" validate:"required"`

	// Event type: WORKSHOP, FEST, SEMINAR or TECH_TALK
	// required: true
	// default: Workshop
	Type string `json:"type" validate:"required"`

	// Scheduled date/time, RFC 3339
	// required: true
	// default: 2025-06-01T10:00:00Z
	EventDate string `json:"event_date" validate:"required"`

	// Owning college name, created on first use
	// required: true
	// default: Tech Institute
	CollegeName string `json:"college_name" validate:"required"`
}

// NewCreateEventHandler returns an HTTP handler for event creation.
// @Summary Create event
// @Description Create an event owned by the named college (admin only); the college is created on first use
// @Tags events
// @Accept json
// @Produce json
// @Param createEventRequest body handlers.CreateEventRequest true "Event creation request"
// @Success 201 {object} models.Response "Event created"
// @Failure 400 {object} models.Response "Missing or invalid fields"
// @Failure 403 {object} models.Response "Admin access required"
// @Router /events [post]
func NewCreateEventHandler(svc EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateEventRequest

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Invalid request body"})
			return
		}
		if err := validate.Struct(req); err != nil {
			writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: "Missing required fields: title, type, event_date, college_name"})
			return
		}

		admin := middlewares.CurrentUser(r.Context())
		if admin == nil {
			writeJSON(w, http.StatusUnauthorized, models.Response{Success: false, Error: "Authentication required"})
			return
		}

		event, err := svc.Create(r.Context(), services.CreateEventInput{
			Title:       req.Title,
			Type:        req.Type,
			EventDate:   req.EventDate,
			CollegeName: req.CollegeName,
		}, admin.ID)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidEventType), errors.Is(err, services.ErrInvalidEventDate):
				writeJSON(w, http.StatusBadRequest, models.Response{Success: false, Error: err.Error()})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				writeJSON(w, http.StatusInternalServerError, models.Response{Success: false, Error: "Internal server error"})
			}
			return
		}

		writeJSON(w, http.StatusCreated, models.Response{
			Success: true,
			Message: "Event created successfully",
			Data:    event,
		})
	}
}
