package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/maksido/blog-api/internal/models"
	appErrors "github.com/maksido/blog-api/pkg/errors"
)

// bcryptCost matches the cost the accounts were originally hashed with.
const bcryptCost = 10

type authUserStore interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUserName(ctx context.Context, userName string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// AuthService implements registration, login, token refresh and logout.
type AuthService struct {
	users     authUserStore
	tokens    *TokenService
	store     tokenStore
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserStore, tokens *TokenService, store tokenStore, validate *validator.Validate, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{users: users, tokens: tokens, store: store, validator: validate, logger: logger}
}

// Register creates a new account and issues its first token pair.
func (s *AuthService) Register(ctx context.Context, req models.RegistrationRequest) (*models.AuthResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid registration payload")
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "email already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check email")
	}

	if _, err := s.users.FindByUserName(ctx, req.UserName); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "userName already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check user name")
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID))

	return &models.AuthResult{User: user, Tokens: pair}, nil
}

// Login authenticates a user by user name, email and password.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.users.FindByUserName(ctx, req.UserName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "incorrect userName")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch user")
	}

	if user.Email != req.Email {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "incorrect email")
	}

	if !verifyPassword(user.PasswordHash, req.Password) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "incorrect password")
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResult{User: user, Tokens: pair}, nil
}

// Refresh exchanges a still-valid refresh token for a new pair and rotates
// the stored session record.
func (s *AuthService) Refresh(ctx context.Context, oldRefreshToken string) (*models.AuthResult, error) {
	if oldRefreshToken == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "user unauthorized")
	}

	claims, err := s.tokens.ParseRefreshToken(oldRefreshToken)
	if err != nil {
		return nil, err
	}

	// The stored token must match the presented one exactly. A later login
	// or refresh overwrote the record, so a superseded token no longer
	// matches even while its signature is still valid.
	if _, err := s.store.FindByRefreshToken(ctx, oldRefreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "user unauthorized")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session record")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "user unauthorized")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	pair, err := s.tokens.IssueTokenPair(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &models.AuthResult{User: user, Tokens: pair}, nil
}

// Logout deletes the session record holding the presented refresh token.
// Logging out with an unknown or already-deleted token still succeeds.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.store.DeleteByRefreshToken(ctx, refreshToken); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session record")
	}
	return nil
}

// Authenticate validates an access token and resolves it to a user. It does
// not consult the session store, so revocation only takes effect once the
// short access expiry elapses.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "please login to access this resource")
	}

	claims, err := s.tokens.ParseAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "please login to access this resource")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}

	return user, nil
}

// hashPassword applies a one-way bcrypt hash at the fixed cost factor.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// verifyPassword reports whether the password matches the stored hash.
func verifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
