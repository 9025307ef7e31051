package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/maksido/blog-api/internal/models"
	appErrors "github.com/maksido/blog-api/pkg/errors"
)

type userStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUserName(ctx context.Context, userName string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateInfo(ctx context.Context, id, userName, email string, updatedAt time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error
}

// UserService handles profile updates for authenticated users.
type UserService struct {
	users     userStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService instance.
func NewUserService(users userStore, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{users: users, validator: validate, logger: logger}
}

// UpdateInfo changes the user name and email of the current user, keeping
// both globally unique.
func (s *UserService) UpdateInfo(ctx context.Context, user *models.User, req models.UpdateInfoRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}

	if req.UserName != user.UserName {
		if other, err := s.users.FindByUserName(ctx, req.UserName); err == nil && other.ID != user.ID {
			return nil, appErrors.Clone(appErrors.ErrConflict, "userName already exists")
		} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check user name")
		}
	}

	if req.Email != user.Email {
		if other, err := s.users.FindByEmail(ctx, req.Email); err == nil && other.ID != user.ID {
			return nil, appErrors.Clone(appErrors.ErrConflict, "email already exists")
		} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
		}
	}

	now := time.Now().UTC()
	if err := s.users.UpdateInfo(ctx, user.ID, req.UserName, req.Email, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}

	updated := *user
	updated.UserName = req.UserName
	updated.Email = req.Email
	updated.UpdatedAt = now
	return &updated, nil
}

// UpdatePassword verifies the old password and stores a fresh hash of the
// new one. Hashing is applied explicitly here, not as a persistence hook.
func (s *UserService) UpdatePassword(ctx context.Context, req models.UpdatePasswordRequest) (*models.User, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid password payload")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "incorrect email")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if !verifyPassword(user.PasswordHash, req.OldPassword) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "incorrect password")
	}

	hash, err := hashPassword(req.NewPassword)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	now := time.Now().UTC()
	if err := s.users.UpdatePassword(ctx, user.ID, hash, now); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update password")
	}

	s.logger.Info("password updated", zap.String("user_id", user.ID))

	updated := *user
	updated.PasswordHash = hash
	updated.UpdatedAt = now
	return &updated, nil
}
