package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusops/college-events/internal/jwt"
	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
)

// Error variables
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.User) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}

// TokenIssuer issues and validates signed tokens.
type TokenIssuer interface {
	GenerateAccess(ctx context.Context, user *models.User) (string, error)
	GenerateRefresh(ctx context.Context, user *models.User) (string, error)
	Validate(ctx context.Context, tokenString string, expected jwt.TokenType) (*jwt.Claims, error)
}

// AuthService handles login and token refresh.
type AuthService struct {
	reader UserReader
	writer UserWriter
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, tokens TokenIssuer) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
		tokens: tokens,
	}
}

// Login verifies credentials and returns the user with a fresh
// access/refresh token pair. The identifier may be a username or an
// email. The active check runs after the credential match.
func (svc *AuthService) Login(ctx context.Context, identifier, password string) (*models.User, string, string, error) {
	user, err := svc.reader.GetByIdentifier(ctx, identifier)
	if err != nil {
		logger.Log.Errorw("failed to look up user", "identifier", identifier, "err", err)
		return nil, "", "", err
	}
	if user == nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Infow("credential mismatch", "identifier", identifier)
		return nil, "", "", ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", "", ErrInactiveAccount
	}

	if err := svc.writer.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Log.Errorw("failed to update last login", "user_id", user.ID, "err", err)
		return nil, "", "", err
	}

	accessToken, err := svc.tokens.GenerateAccess(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to generate access token", "user_id", user.ID, "err", err)
		return nil, "", "", err
	}

	refreshToken, err := svc.tokens.GenerateRefresh(ctx, user)
	if err != nil {
		logger.Log.Errorw("failed to generate refresh token", "user_id", user.ID, "err", err)
		return nil, "", "", err
	}

	return user, accessToken, refreshToken, nil
}

// Refresh validates a refresh token and mints a new access token for
// its subject, provided the user still exists and is active.
func (svc *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := svc.tokens.Validate(ctx, refreshToken, jwt.TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	user, err := svc.reader.GetByID(ctx, claims.UserID)
	if err != nil {
		logger.Log.Errorw("failed to resolve refresh subject", "user_id", claims.UserID, "err", err)
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if !user.IsActive {
		return "", ErrInactiveAccount
	}

	return svc.tokens.GenerateAccess(ctx, user)
}
