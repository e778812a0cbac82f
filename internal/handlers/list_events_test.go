package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/campusops/college-events/internal/models"
)

func TestListEventsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockEventLister(ctrl)

	t.Run("success with count", func(t *testing.T) {
		events := []models.Event{
			{EventID: uuid.New(), Title: "Go Workshop"},
			{EventID: uuid.New(), Title: "Spring Fest"},
		}
		mockSvc.EXPECT().List(gomock.Any()).Return(events, nil)

		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		w := httptest.NewRecorder()

		NewListEventsHandler(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.Response
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 2, resp.Count)
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc.EXPECT().List(gomock.Any()).Return(nil, errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/events", nil)
		w := httptest.NewRecorder()

		NewListEventsHandler(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestDashboardHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockDashboarder(ctrl)

	t.Run("success", func(t *testing.T) {
		eventID := uuid.New()
		events := []models.Event{
			{
				EventID: eventID,
				Title:   "Go Workshop",
				Registrations: []models.Registration{
					{RegistrationID: uuid.New(), EventID: eventID, StudentID: 1},
				},
			},
		}
		mockSvc.EXPECT().Dashboard(gomock.Any()).Return(events, nil)

		req := httptest.NewRequest(http.MethodGet, "/events/dashboard", nil)
		w := httptest.NewRecorder()

		NewDashboardHandler(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp models.Response
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, 1, resp.Count)
	})

	t.Run("internal error", func(t *testing.T) {
		mockSvc.EXPECT().Dashboard(gomock.Any()).Return(nil, errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/events/dashboard", nil)
		w := httptest.NewRecorder()

		NewDashboardHandler(mockSvc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
