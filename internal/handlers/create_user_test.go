package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/services"
)

func TestCreateUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockUserCreator(ctrl)

	created := &models.User{ID: 1, Username: "john_doe", Role: models.RoleUser}

	validBody := CreateUserRequest{
		Username:    "john_doe",
		Email:       "john@example.com",
		Password:    "secret123",
		FullName:    "John Doe",
		CollegeName: "Tech Institute",
	}

	tests := []struct {
		name          string
		inputBody     interface{}
		mockSetup     func()
		expectedCode  int
		expectedError string
	}{
		{
			name:      "success",
			inputBody: validBody,
			mockSetup: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), services.CreateUserInput{
						Username:    "john_doe",
						Email:       "john@example.com",
						Password:    "secret123",
						FullName:    "John Doe",
						CollegeName: "Tech Institute",
					}).
					Return(created, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:          "invalid JSON",
			inputBody:     "{invalid json}",
			mockSetup:     func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name: "missing required fields",
			inputBody: CreateUserRequest{
				Username: "john_doe",
			},
			mockSetup:     func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Missing or invalid required fields",
		},
		{
			name: "malformed email",
			inputBody: CreateUserRequest{
				Username: "john_doe",
				Email:    "not-an-email",
				Password: "secret123",
				FullName: "John Doe",
			},
			mockSetup:     func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Missing or invalid required fields",
		},
		{
			name:      "invalid role",
			inputBody: validBody,
			mockSetup: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, services.ErrInvalidRole)
			},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid role provided. Must be USER or ADMIN.",
		},
		{
			name:      "duplicate username or email",
			inputBody: validBody,
			mockSetup: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, services.ErrUserAlreadyExists)
			},
			expectedCode:  http.StatusConflict,
			expectedError: "Username or email already exists",
		},
		{
			name:      "internal error",
			inputBody: validBody,
			mockSetup: func() {
				mockSvc.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("db error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			var bodyBytes []byte
			switch v := tt.inputBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(bodyBytes))
			w := httptest.NewRecorder()

			handler := NewCreateUserHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			var resp models.Response
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			if tt.expectedCode == http.StatusCreated {
				assert.True(t, resp.Success)
				assert.Equal(t, "User created successfully", resp.Message)
			} else {
				assert.False(t, resp.Success)
				assert.Equal(t, tt.expectedError, resp.Error)
			}
		})
	}
}
