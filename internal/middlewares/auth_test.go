package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/campusops/college-events/internal/jwt"
	"github.com/campusops/college-events/internal/middlewares"
	"github.com/campusops/college-events/internal/models"
)

func TestAuthMiddleware(t *testing.T) {
	activeUser := &models.User{ID: 1, Username: "alice", Role: models.RoleUser, IsActive: true}
	inactiveUser := &models.User{ID: 2, Username: "carol", Role: models.RoleUser, IsActive: false}
	claims := &jwt.Claims{UserID: 1, Username: "alice", Role: models.RoleUser, TokenType: jwt.TokenTypeAccess}

	tests := []struct {
		name         string
		tokenErr     error
		validateErr  error
		claims       *jwt.Claims
		user         *models.User
		resolveErr   error
		expectedCode int
		wantNext     bool
	}{
		{
			name:         "valid token and active user",
			claims:       claims,
			user:         activeUser,
			expectedCode: http.StatusOK,
			wantNext:     true,
		},
		{
			name:         "missing token",
			tokenErr:     errors.New("authentication token is missing"),
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "expired token",
			validateErr:  jwt.ErrTokenExpired,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "refresh token used as access token",
			validateErr:  jwt.ErrWrongTokenType,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "malformed token",
			validateErr:  jwt.ErrTokenMalformed,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "subject deleted after issuance",
			claims:       claims,
			user:         nil,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "subject deactivated after issuance",
			claims:       &jwt.Claims{UserID: 2, TokenType: jwt.TokenTypeAccess},
			user:         inactiveUser,
			expectedCode: http.StatusUnauthorized,
		},
		{
			name:         "resolver error",
			claims:       claims,
			resolveErr:   errors.New("db error"),
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockTokener := middlewares.NewMockTokener(ctrl)
			mockUsers := middlewares.NewMockUserResolver(ctrl)

			mockTokener.EXPECT().
				GetTokenFromRequest(gomock.Any(), gomock.Any()).
				Return("token", tt.tokenErr)

			if tt.tokenErr == nil {
				mockTokener.EXPECT().
					Validate(gomock.Any(), "token", jwt.TokenTypeAccess).
					Return(tt.claims, tt.validateErr)
			}
			if tt.tokenErr == nil && tt.validateErr == nil {
				mockUsers.EXPECT().
					GetByID(gomock.Any(), tt.claims.UserID).
					Return(tt.user, tt.resolveErr)
			}

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, tt.user, middlewares.CurrentUser(r.Context()))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/users/profile", nil)
			w := httptest.NewRecorder()

			middlewares.AuthMiddleware(mockTokener, mockUsers)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}

func TestAdminMiddleware(t *testing.T) {
	admin := &models.User{ID: 1, Username: "root", Role: models.RoleAdmin, IsActive: true}
	student := &models.User{ID: 2, Username: "alice", Role: models.RoleUser, IsActive: true}

	tests := []struct {
		name         string
		user         *models.User
		expectedCode int
		wantNext     bool
	}{
		{
			name:         "admin passes",
			user:         admin,
			expectedCode: http.StatusOK,
			wantNext:     true,
		},
		{
			name:         "student is forbidden",
			user:         student,
			expectedCode: http.StatusForbidden,
		},
		{
			name:         "unauthenticated",
			user:         nil,
			expectedCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			if tt.user != nil {
				req = req.WithContext(middlewares.WithUser(req.Context(), tt.user))
			}
			w := httptest.NewRecorder()

			middlewares.AdminMiddleware()(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedCode, w.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
		})
	}
}
