package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/maksido/blog-api/internal/models"
	appErrors "github.com/maksido/blog-api/pkg/errors"
)

type tokenStore interface {
	FindByUser(ctx context.Context, userID string) (*models.TokenRecord, error)
	FindByRefreshToken(ctx context.Context, refreshToken string) (*models.TokenRecord, error)
	Create(ctx context.Context, userID, refreshToken string) error
	Update(ctx context.Context, id, refreshToken string) error
	DeleteByRefreshToken(ctx context.Context, refreshToken string) error
}

// TokenConfig defines the secrets and lifetimes for the token pair.
// Access and refresh tokens use distinct secrets; AccessTTL is expected to
// be much shorter than RefreshTTL.
type TokenConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenService mints access/refresh token pairs and persists the refresh
// token as the single source of truth for a user's session.
type TokenService struct {
	store  tokenStore
	logger *zap.Logger
	config TokenConfig
}

// NewTokenService constructs a TokenService instance.
func NewTokenService(store tokenStore, logger *zap.Logger, config TokenConfig) *TokenService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenService{store: store, logger: logger, config: config}
}

// IssueTokenPair signs a fresh access/refresh pair for the user and upserts
// the stored session record. A pre-existing record is overwritten in place,
// which silently evicts any other session for the same user.
func (s *TokenService) IssueTokenPair(ctx context.Context, userID string) (models.TokenPair, error) {
	accessToken, err := s.sign(userID, s.config.AccessSecret, s.config.AccessTTL)
	if err != nil {
		return models.TokenPair{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign access token")
	}

	refreshToken, err := s.sign(userID, s.config.RefreshSecret, s.config.RefreshTTL)
	if err != nil {
		return models.TokenPair{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign refresh token")
	}

	record, err := s.store.FindByUser(ctx, userID)
	switch {
	case err == nil:
		if err := s.store.Update(ctx, record.ID, refreshToken); err != nil {
			return models.TokenPair{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to rotate refresh token")
		}
	case errors.Is(err, sql.ErrNoRows):
		if err := s.store.Create(ctx, userID, refreshToken); err != nil {
			return models.TokenPair{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist refresh token")
		}
	default:
		return models.TokenPair{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session record")
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// ParseAccessToken verifies an access token's signature and expiry and
// returns its claims.
func (s *TokenService) ParseAccessToken(tokenString string) (*models.TokenClaims, error) {
	return s.parse(tokenString, s.config.AccessSecret)
}

// ParseRefreshToken verifies a refresh token's signature and expiry and
// returns its claims. Validity against the stored session record is checked
// separately by the caller.
func (s *TokenService) ParseRefreshToken(tokenString string) (*models.TokenClaims, error) {
	return s.parse(tokenString, s.config.RefreshSecret)
}

func (s *TokenService) sign(userID, secret string, ttl time.Duration) (string, error) {
	issuedAt := time.Now().UTC()
	// The jti keeps every signed token unique; without it two tokens minted
	// in the same second would be byte-identical, and rotation could hand
	// back the token it was meant to supersede.
	claims := &models.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *TokenService) parse(tokenString, secret string) (*models.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.TokenClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		// Malformed, bad signature and expired all map to the same outcome.
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.TokenClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}
