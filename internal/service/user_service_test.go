package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maksido/blog-api/internal/models"
	appErrors "github.com/maksido/blog-api/pkg/errors"
)

func seedUser(t *testing.T, users *memUserStore, userName, email, password string) *models.User {
	t.Helper()
	hash, err := hashPassword(password)
	require.NoError(t, err)
	user := &models.User{UserName: userName, Email: email, PasswordHash: hash}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUpdateInfoSuccess(t *testing.T) {
	users := newMemUserStore()
	svc := NewUserService(users, validator.New(), zap.NewNop())
	user := seedUser(t, users, "alice", "alice@x.com", "secret1")

	updated, err := svc.UpdateInfo(context.Background(), user, models.UpdateInfoRequest{
		UserName: "alice2", Email: "alice2@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.UserName)
	assert.Equal(t, "alice2@x.com", updated.Email)

	stored, err := users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice2", stored.UserName)
}

func TestUpdateInfoKeepsOwnValues(t *testing.T) {
	users := newMemUserStore()
	svc := NewUserService(users, validator.New(), zap.NewNop())
	user := seedUser(t, users, "alice", "alice@x.com", "secret1")

	// Re-submitting your own name and email is not a conflict.
	updated, err := svc.UpdateInfo(context.Background(), user, models.UpdateInfoRequest{
		UserName: "alice", Email: "alice@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.UserName)
}

func TestUpdateInfoUserNameTaken(t *testing.T) {
	users := newMemUserStore()
	svc := NewUserService(users, validator.New(), zap.NewNop())
	user := seedUser(t, users, "alice", "alice@x.com", "secret1")
	seedUser(t, users, "bob", "bob@x.com", "secret1")

	_, err := svc.UpdateInfo(context.Background(), user, models.UpdateInfoRequest{
		UserName: "bob", Email: "alice@x.com",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestUpdateInfoEmailTaken(t *testing.T) {
	users := newMemUserStore()
	svc := NewUserService(users, validator.New(), zap.NewNop())
	user := seedUser(t, users, "alice", "alice@x.com", "secret1")
	seedUser(t, users, "bob", "bob@x.com", "secret1")

	_, err := svc.UpdateInfo(context.Background(), user, models.UpdateInfoRequest{
		UserName: "alice", Email: "bob@x.com",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestUpdateInfoInvalidEmail(t *testing.T) {
	users := newMemUserStore()
	svc := NewUserService(users, validator.New(), zap.NewNop())
	user := seedUser(t, users, "alice", "alice@x.com", "secret1")

	_, err := svc.UpdateInfo(context.Background(), user, models.UpdateInfoRequest{
		UserName: "alice", Email: "not-an-email",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdatePasswordSuccess(t *testing.T) {
	users := newMemUserStore()
	svc := NewUserService(users, validator.New(), zap.NewNop())
	user := seedUser(t, users, "alice", "alice@x.com", "secret1")

	_, err := svc.UpdatePassword(context.Background(), models.UpdatePasswordRequest{
		Email: "alice@x.com", OldPassword: "secret1", NewPassword: "secret2",
	})
	require.NoError(t, err)

	stored, err := users.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.False(t, verifyPassword(stored.PasswordHash, "secret1"))
	assert.True(t, verifyPassword(stored.PasswordHash, "secret2"))
}

func TestUpdatePasswordWrongOldPassword(t *testing.T) {
	users := newMemUserStore()
	svc := NewUserService(users, validator.New(), zap.NewNop())
	seedUser(t, users, "alice", "alice@x.com", "secret1")

	_, err := svc.UpdatePassword(context.Background(), models.UpdatePasswordRequest{
		Email: "alice@x.com", OldPassword: "wrong66", NewPassword: "secret2",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestUpdatePasswordUnknownEmail(t *testing.T) {
	users := newMemUserStore()
	svc := NewUserService(users, validator.New(), zap.NewNop())

	_, err := svc.UpdatePassword(context.Background(), models.UpdatePasswordRequest{
		Email: "ghost@x.com", OldPassword: "secret1", NewPassword: "secret2",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}
