package handlers

import (
	"context"
	"net/http"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
)

// EventLister defines the listing interface of the event service.
type EventLister interface {
	List(ctx context.Context) ([]models.Event, error)
}

// NewListEventsHandler returns an HTTP handler listing all events
// ordered by event date ascending.
// @Summary List events
// @Description Return all events ordered by date
// @Tags events
// @Produce json
// @Success 200 {object} models.Response "Events with count"
// @Failure 401 {object} models.Response "Not authenticated"
// @Router /events [get]
func NewListEventsHandler(svc EventLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			writeJSON(w, http.StatusInternalServerError, models.Response{Success: false, Error: "Internal server error"})
			return
		}

		writeJSON(w, http.StatusOK, models.Response{
			Success: true,
			Data:    events,
			Count:   len(events),
		})
	}
}
