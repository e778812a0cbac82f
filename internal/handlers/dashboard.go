package handlers

import (
	"context"
	"net/http"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
)

// Dashboarder defines the dashboard interface of the event service.
type Dashboarder interface {
	Dashboard(ctx context.Context) ([]models.Event, error)
}

// NewDashboardHandler returns an HTTP handler serving all events with
// their registrations and student details.
// @Summary Admin event dashboard
// @Description Return all events with full registration details (admin only)
// @Tags events
// @Produce json
// @Success 200 {object} models.Response "Events with registrations"
// @Failure 403 {object} models.Response "Admin access required"
// @Router /events/dashboard [get]
func NewDashboardHandler(svc Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		events, err := svc.Dashboard(r.Context())
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
