package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusops/college-events/internal/logger"
	"github.com/campusops/college-events/internal/models"
	"github.com/campusops/college-events/internal/repositories"
)

// Error variables
var (
	ErrUserAlreadyExists = errors.New("username or email already exists")
	ErrSelfDelete        = errors.New("admin cannot delete themselves")
	ErrInvalidRole       = errors.New("invalid role: must be USER or ADMIN")
)

// CollegeFinder resolves a college by name, creating it if absent.
type CollegeFinder interface {
	FindOrCreate(ctx context.Context, name string) (*models.College, error)
}

// CreateUserInput carries the fields for user creation. Role defaults
// to USER when empty; CollegeName triggers find-or-create when set.
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	FullName    string
	Role        string
	CollegeName string
}

// UserService handles user directory operations.
type UserService struct {
	reader   UserReader
	writer   UserWriter
	colleges CollegeFinder
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, colleges CollegeFinder) *UserService {
	return &UserService{
		reader:   reader,
		writer:   writer,
		colleges: colleges,
	}
}

// Create registers a new user. Role is immutable after assignment:
// there is no promotion path.
func (svc *UserService) Create(ctx context.Context, in CreateUserInput) (*models.User, error) {
	role := models.RoleUser
	if in.Role != "" {
		parsed, err := models.ParseRole(in.Role)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRole, in.Role)
		}
		role = parsed
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		FullName: in.FullName,
		Role:     role,
	}

	if in.CollegeName != "" {
		college, err := svc.colleges.FindOrCreate(ctx, in.CollegeName)
		if err != nil {
			logger.Log.Errorw("failed to find or create college", "name", in.CollegeName, "err", err)
			return nil, err
		}
		user.CollegeID = &college.CollegeID
		user.College = college
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}
	user.PasswordHash = string(hashed)

	saved, err := svc.writer.Save(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "username", in.Username, "err", err)
		return nil, err
	}
	saved.College = user.College

	logger.Log.Infow("user created", "user_id", saved.ID, "username", saved.Username, "role", saved.Role)
	return saved, nil
}

// List returns all users.
func (svc *UserService) List(ctx context.Context) ([]models.User, error) {
	return svc.reader.List(ctx)
}

// Delete removes a user. Admins cannot delete their own account.
func (svc *UserService) Delete(ctx context.Context, id, actingUserID int64) error {
	if id == actingUserID {
		return ErrSelfDelete
	}

	if err := svc.writer.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to delete user", "user_id", id, "err", err)
		return err
	}

	logger.Log.Infow("user deleted", "user_id", id, "deleted_by", actingUserID)
	return nil
}
