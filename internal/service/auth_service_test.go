package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/maksido/blog-api/internal/models"
	appErrors "github.com/maksido/blog-api/pkg/errors"
)

// memUserStore is an in-memory stand-in for the user repository.
type memUserStore struct {
	users map[string]*models.User // keyed by user ID
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*models.User)}
}

func (m *memUserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copy := *user
	return &copy, nil
}

func (m *memUserStore) FindByUserName(ctx context.Context, userName string) (*models.User, error) {
	for _, user := range m.users {
		if user.UserName == userName {
			copy := *user
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			copy := *user
			return &copy, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUserStore) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	copy := *user
	m.users[user.ID] = &copy
	return nil
}

func (m *memUserStore) UpdateInfo(ctx context.Context, id, userName, email string, updatedAt time.Time) error {
	if user, ok := m.users[id]; ok {
		user.UserName = userName
		user.Email = email
		user.UpdatedAt = updatedAt
	}
	return nil
}

func (m *memUserStore) UpdatePassword(ctx context.Context, id, passwordHash string, updatedAt time.Time) error {
	if user, ok := m.users[id]; ok {
		user.PasswordHash = passwordHash
		user.UpdatedAt = updatedAt
	}
	return nil
}

func newAuthFixture(t *testing.T) (*AuthService, *memUserStore, *memTokenStore) {
	t.Helper()
	users := newMemUserStore()
	tokens := newMemTokenStore()
	tokenSvc := NewTokenService(tokens, zap.NewNop(), testTokenConfig())
	svc := NewAuthService(users, tokenSvc, tokens, validator.New(), zap.NewNop())
	return svc, users, tokens
}

func TestRegisterSuccess(t *testing.T) {
	svc, users, tokens := newAuthFixture(t)

	res, err := svc.Register(context.Background(), models.RegistrationRequest{
		UserName: "alice", Email: "alice@x.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.User.ID)
	assert.NotEmpty(t, res.Tokens.AccessToken)
	assert.NotEmpty(t, res.Tokens.RefreshToken)

	stored, err := users.FindByUserName(context.Background(), "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, verifyPassword(stored.PasswordHash, "secret1"))

	record, err := tokens.FindByUser(context.Background(), res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Tokens.RefreshToken, record.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), models.RegistrationRequest{UserName: "bob", Email: "alice@x.com", Password: "secret1"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "email")
}

func TestRegisterDuplicateUserName(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "other@x.com", Password: "secret1"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	assert.Contains(t, appErr.Message, "userName")
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), models.LoginRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.UserName)
	assert.NotEmpty(t, res.Tokens.AccessToken)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{UserName: "alice", Email: "alice@x.com", Password: "wrong66"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginEmailMismatch(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), models.LoginRequest{UserName: "alice", Email: "bob@x.com", Password: "secret1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestRefreshRotatesAndRevokesOldToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	reg, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	login, err := svc.Login(context.Background(), models.LoginRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	// Login already superseded the registration pair.
	_, err = svc.Refresh(context.Background(), reg.Tokens.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)

	refreshed, err := svc.Refresh(context.Background(), login.Tokens.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, refreshed.User.ID)
	assert.NotEqual(t, login.Tokens.RefreshToken, refreshed.Tokens.RefreshToken)
	assert.NotEqual(t, login.Tokens.AccessToken, refreshed.Tokens.AccessToken)

	// The pre-rotation refresh token no longer matches the stored record.
	_, err = svc.Refresh(context.Background(), login.Tokens.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestRefreshMissingToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Refresh(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestRefreshAfterLogout(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	res, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), res.Tokens.RefreshToken))

	// Signature is still valid but the record is gone.
	_, err = svc.Refresh(context.Background(), res.Tokens.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestSecondLoginInvalidatesFirstSession(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	device1, err := svc.Login(context.Background(), models.LoginRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), models.LoginRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), device1.Tokens.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	res, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), res.Tokens.RefreshToken))
	require.NoError(t, svc.Logout(context.Background(), res.Tokens.RefreshToken))
	require.NoError(t, svc.Logout(context.Background(), ""))
}

func TestAuthenticateSuccess(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	res, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	user, err := svc.Authenticate(context.Background(), res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)
}

func TestAuthenticateMissingToken(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	_, err := svc.Authenticate(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	users := newMemUserStore()
	tokens := newMemTokenStore()
	cfg := testTokenConfig()
	cfg.AccessTTL = -time.Minute
	tokenSvc := NewTokenService(tokens, zap.NewNop(), cfg)
	svc := NewAuthService(users, tokenSvc, tokens, validator.New(), zap.NewNop())

	res, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), res.Tokens.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestAuthenticateVanishedUser(t *testing.T) {
	svc, users, _ := newAuthFixture(t)

	res, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	delete(users.users, res.User.ID)

	_, err = svc.Authenticate(context.Background(), res.Tokens.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

// Authentication does not consult the session store, so a logged-out user
// keeps access until the access token expires.
func TestAuthenticateSurvivesLogoutUntilExpiry(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	res, err := svc.Register(context.Background(), models.RegistrationRequest{UserName: "alice", Email: "alice@x.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), res.Tokens.RefreshToken))

	user, err := svc.Authenticate(context.Background(), res.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, user.ID)
}
