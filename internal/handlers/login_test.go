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

	"github.com/campusops/college-events/internal/jwt"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/services"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	user := &models.User{ID: 1, Username: "john", Role: models.RoleUser, IsActive: true}

	tests := []struct {
		name          string
		inputBody     interface{}
		mockSetup     func()
		expectedCode  int
		expectedError string
		wantCookies   bool
	}{
		{
			name:      "success",
			inputBody: LoginRequest{Username: "john", Password: "pass123"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john", "pass123").
					Return(user, "access-token", "refresh-token", nil)
			},
			expectedCode: http.StatusOK,
			wantCookies:  true,
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:          "missing password",
			inputBody:     LoginRequest{Username: "john"},
			mockSetup:     func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Username and password are required",
		},
		{
			name:      "wrong credentials",
			inputBody: LoginRequest{Username: "john", Password: "wrongpass"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john", "wrongpass").
					Return(nil, "", "", services.ErrInvalidCredentials)
			},
			expectedCode:  http.StatusUnauthorized,
			expectedError: "Invalid credentials",
		},
		{
			name:      "inactive account",
			inputBody: LoginRequest{Username: "john", Password: "pass123"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john", "pass123").
					Return(nil, "", "", services.ErrInactiveAccount)
			},
			expectedCode:  http.StatusForbidden,
			expectedError: "Account is inactive",
		},
		{
			name:      "internal error",
			inputBody: LoginRequest{Username: "john", Password: "pass123"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "john", "pass123").
					Return(nil, "", "", errors.New("database error"))
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

			req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(bodyBytes))
			w := httptest.NewRecorder()

			handler := NewLoginHandler(mockSvc)
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)

			var resp models.Response
			assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

			if tt.expectedCode == http.StatusOK {
				assert.True(t, resp.Success)
				assert.Equal(t, "Login successful", resp.Message)
			} else if tt.expectedError != "" {
				assert.False(t, resp.Success)
				assert.Equal(t, tt.expectedError, resp.Error)
			}

			cookies := map[string]string{}
			for _, c := range w.Result().Cookies() {
				cookies[c.Name] = c.Value
			}
			if tt.wantCookies {
				assert.Equal(t, "access-token", cookies[jwt.AccessTokenCookie])
				assert.Equal(t, "refresh-token", cookies[jwt.RefreshTokenCookie])
			} else {
				assert.Empty(t, cookies)
			}
		})
	}
}
